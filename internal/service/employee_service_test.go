package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"iline-employees/internal/apperror"
	"iline-employees/internal/db"
	"iline-employees/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := db.Open(sqlite.Open("file::memory:"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	require.NoError(t, database.AutoMigrate(&models.Employee{}))
	return database
}

func insertEmployees(t *testing.T, database *gorm.DB, n int) {
	t.Helper()
	hired := time.Date(2015, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		employee := models.Employee{
			FullName: fmt.Sprintf("Employee %d", i+1),
			Post:     models.PostDeveloper,
			HireDate: hired,
			Salary:   75000,
		}
		require.NoError(t, database.Create(&employee).Error)
	}
}

func TestListPage(t *testing.T) {
	database := openTestDB(t)
	insertEmployees(t, database, 45)
	svc := NewEmployeeService(database)
	ctx := context.Background()

	total, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(45), total)

	page, err := svc.ListPage(ctx, 2, 20)
	require.NoError(t, err)
	require.Len(t, page, 20)
	for i, employee := range page {
		assert.Equal(t, 21+i, employee.ID)
	}

	last, err := svc.ListPage(ctx, 3, 20)
	require.NoError(t, err)
	assert.Len(t, last, 5)

	beyond, err := svc.ListPage(ctx, 4, 20)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestListPageValidation(t *testing.T) {
	svc := NewEmployeeService(openTestDB(t))

	_, err := svc.ListPage(context.Background(), 0, 20)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	_, err = svc.ListPage(context.Background(), 1, 0)
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))
}

func TestCreateEmployee(t *testing.T) {
	database := openTestDB(t)
	insertEmployees(t, database, 1)
	svc := NewEmployeeService(database)

	managerID := 1
	created, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{
		FullName:  "  Ivan Petrov ",
		Post:      "Team Lead",
		Salary:    210000.5,
		ManagerID: &managerID,
		HireDate:  time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, created.ID)
	assert.Equal(t, "Ivan Petrov", created.FullName)
	assert.Equal(t, "2020-06-15", created.HireDate)
	require.NotNil(t, created.ManagerID)
	assert.Equal(t, 1, *created.ManagerID)

	page, err := svc.ListPage(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Team Lead", page[1].Post)
	assert.InDelta(t, 210000.5, page[1].Salary, 0.001)
	assert.Equal(t, "2020-06-15", page[1].HireDate)
}

func TestCreateEmployeeValidation(t *testing.T) {
	database := openTestDB(t)
	svc := NewEmployeeService(database)
	hired := time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateEmployee(context.Background(), CreateEmployeeInput{FullName: "   ", Post: "Developer", HireDate: hired})
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	_, err = svc.CreateEmployee(context.Background(), CreateEmployeeInput{FullName: "Anna", Post: "", HireDate: hired})
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	_, err = svc.CreateEmployee(context.Background(), CreateEmployeeInput{FullName: "Anna", Post: "Developer"})
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	total, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCountWithoutTable(t *testing.T) {
	database, err := db.Open(sqlite.Open("file::memory:"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	_, err = NewEmployeeService(database).Count(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperror.CodeQuery, apperror.GetCode(err))
}

func TestPositionsReturnsCopy(t *testing.T) {
	svc := NewEmployeeService(nil)

	positions := svc.Positions()
	assert.Equal(t, []string{"CEO", "Manager", "Team Lead", "Senior Developer", "Developer"}, positions)

	positions[0] = "changed"
	assert.Equal(t, "CEO", svc.Positions()[0])
}
