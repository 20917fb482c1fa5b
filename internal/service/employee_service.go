package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"iline-employees/internal/apperror"
	"iline-employees/internal/models"
)

type EmployeeService struct {
	db *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{db: db}
}

func (s *EmployeeService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error; err != nil {
		return 0, apperror.Wrap(apperror.CodeQuery, "count employees", err)
	}
	return count, nil
}

// ListPage returns the 1-based page of employees ordered by id. A page past
// the end yields an empty slice.
func (s *EmployeeService) ListPage(ctx context.Context, page, size int) ([]EmployeeDTO, error) {
	if page < 1 {
		return nil, apperror.New(apperror.CodeValidation, "page must be at least 1")
	}
	if size < 1 {
		return nil, apperror.New(apperror.CodeValidation, "page size must be at least 1")
	}

	var employees []models.Employee
	if err := s.db.WithContext(ctx).
		Order("id ASC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&employees).Error; err != nil {
		return nil, apperror.Wrap(apperror.CodeQuery, "list employees", err)
	}

	result := make([]EmployeeDTO, 0, len(employees))
	for _, employee := range employees {
		result = append(result, employeeToDTO(employee))
	}
	return result, nil
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (EmployeeDTO, error) {
	fullName, err := normalizeRequiredString(input.FullName, "full_name")
	if err != nil {
		return EmployeeDTO{}, err
	}

	post, err := normalizeRequiredString(input.Post, "post")
	if err != nil {
		return EmployeeDTO{}, err
	}

	if input.HireDate.IsZero() {
		return EmployeeDTO{}, apperror.New(apperror.CodeValidation, "hire_date is required")
	}

	employee := models.Employee{
		FullName:  fullName,
		Post:      post,
		HireDate:  input.HireDate,
		Salary:    input.Salary,
		ManagerID: input.ManagerID,
	}

	if err := s.db.WithContext(ctx).Create(&employee).Error; err != nil {
		return EmployeeDTO{}, mapDatabaseError(err)
	}

	return employeeToDTO(employee), nil
}

func (s *EmployeeService) Positions() []string {
	positions := make([]string, len(models.Positions))
	copy(positions, models.Positions)
	return positions
}

func employeeToDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        employee.ID,
		FullName:  employee.FullName,
		Post:      employee.Post,
		HireDate:  employee.HireDate.Format(DateLayout),
		Salary:    employee.Salary,
		ManagerID: employee.ManagerID,
	}
}

func normalizeRequiredString(raw string, field string) (string, error) {
	value := strings.TrimSpace(raw)
	length := utf8.RuneCountInString(value)
	if length < 1 || length > 200 {
		return "", apperror.New(apperror.CodeValidation, fmt.Sprintf("%s length must be in range 1..200", field))
	}
	return value, nil
}

func mapDatabaseError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return apperror.New(apperror.CodeConflict, "resource with the same unique attributes already exists")
		}
		if pgErr.Code == "23503" {
			return apperror.New(apperror.CodeValidation, "invalid foreign key reference")
		}
	}
	return apperror.Wrap(apperror.CodeQuery, "insert employee", err)
}
