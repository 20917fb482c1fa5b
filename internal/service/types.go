package service

import (
	"context"
	"time"
)

const DateLayout = "2006-01-02"

type CreateEmployeeInput struct {
	FullName  string
	Post      string
	Salary    float64
	ManagerID *int
	HireDate  time.Time
}

type EmployeeDTO struct {
	ID        int     `json:"id"`
	FullName  string  `json:"full_name"`
	Post      string  `json:"post"`
	HireDate  string  `json:"hire_date"`
	Salary    float64 `json:"salary"`
	ManagerID *int    `json:"manager_id"`
}

type Page struct {
	Number int           `json:"page"`
	Size   int           `json:"size"`
	Total  int64         `json:"total"`
	Items  []EmployeeDTO `json:"items"`
}

// Directory is the read/append surface shared by the console menu and the
// HTTP API.
type Directory interface {
	Count(ctx context.Context) (int64, error)
	ListPage(ctx context.Context, page, size int) ([]EmployeeDTO, error)
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (EmployeeDTO, error)
	Positions() []string
}
