package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"iline-employees/internal/apperror"
	"iline-employees/internal/service"
)

type stubService struct {
	countFn    func(ctx context.Context) (int64, error)
	listPageFn func(ctx context.Context, page, size int) ([]service.EmployeeDTO, error)
	createFn   func(ctx context.Context, input service.CreateEmployeeInput) (service.EmployeeDTO, error)
}

func (s stubService) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

func (s stubService) ListPage(ctx context.Context, page, size int) ([]service.EmployeeDTO, error) {
	if s.listPageFn == nil {
		return []service.EmployeeDTO{}, nil
	}
	return s.listPageFn(ctx, page, size)
}

func (s stubService) CreateEmployee(ctx context.Context, input service.CreateEmployeeInput) (service.EmployeeDTO, error) {
	if s.createFn == nil {
		return service.EmployeeDTO{}, nil
	}
	return s.createFn(ctx, input)
}

func (s stubService) Positions() []string {
	return []string{"CEO", "Manager", "Team Lead", "Senior Developer", "Developer"}
}

func TestListEmployees(t *testing.T) {
	handler := NewHandler(stubService{
		countFn: func(ctx context.Context) (int64, error) {
			return 45, nil
		},
		listPageFn: func(ctx context.Context, page, size int) ([]service.EmployeeDTO, error) {
			if page != 2 || size != 20 {
				t.Fatalf("unexpected paging: page=%d size=%d", page, size)
			}
			return []service.EmployeeDTO{{ID: 21, FullName: "Oleg Ivanov", Post: "Developer", HireDate: "2012-04-05", Salary: 55000}}, nil
		},
	}, zap.NewNop(), 20)

	req := httptest.NewRequest(http.MethodGet, "/employees?page=2", nil)
	recorder := httptest.NewRecorder()

	handler.Routes().ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}

	var payload service.Page
	if err := json.NewDecoder(recorder.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}

	if payload.Total != 45 || payload.Number != 2 || len(payload.Items) != 1 || payload.Items[0].ID != 21 {
		t.Fatalf("unexpected page: %+v", payload)
	}
}

func TestListEmployeesPagingValidation(t *testing.T) {
	handler := NewHandler(stubService{}, zap.NewNop(), 20)

	for _, target := range []string{"/employees?page=0", "/employees?size=abc", "/employees?size=501"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status %d, got %d", target, http.StatusBadRequest, recorder.Code)
		}
	}
}

func TestCreateEmployee(t *testing.T) {
	handler := NewHandler(stubService{
		createFn: func(ctx context.Context, input service.CreateEmployeeInput) (service.EmployeeDTO, error) {
			if input.FullName != "Anna Smirnova" {
				t.Fatalf("unexpected full name: %s", input.FullName)
			}
			if input.ManagerID == nil || *input.ManagerID != 7 {
				t.Fatalf("unexpected manager id: %v", input.ManagerID)
			}
			if !input.HireDate.Equal(time.Date(2019, time.May, 20, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected hire date: %v", input.HireDate)
			}
			return service.EmployeeDTO{ID: 50001, FullName: input.FullName, Post: input.Post, HireDate: "2019-05-20", Salary: input.Salary, ManagerID: input.ManagerID}, nil
		},
	}, zap.NewNop(), 20)

	body := bytes.NewBufferString(`{"full_name":"Anna Smirnova","post":"Team Lead","salary":230000,"manager_id":7,"hire_date":"2019-05-20"}`)
	req := httptest.NewRequest(http.MethodPost, "/employees", body)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, recorder.Code)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(recorder.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}

	if payload["id"] != float64(50001) {
		t.Fatalf("expected id 50001, got %v", payload["id"])
	}
}

func TestCreateEmployeeBadHireDate(t *testing.T) {
	handler := NewHandler(stubService{}, zap.NewNop(), 20)

	body := bytes.NewBufferString(`{"full_name":"Anna","post":"Developer","salary":60000,"manager_id":40,"hire_date":"20.05.2019"}`)
	req := httptest.NewRequest(http.MethodPost, "/employees", body)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestCreateEmployeeMissingSalary(t *testing.T) {
	handler := NewHandler(stubService{}, zap.NewNop(), 20)

	body := bytes.NewBufferString(`{"full_name":"Anna","post":"Developer","manager_id":40,"hire_date":"2019-05-20"}`)
	req := httptest.NewRequest(http.MethodPost, "/employees", body)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestCreateEmployeeErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperror.New(apperror.CodeValidation, "invalid foreign key reference"), http.StatusBadRequest},
		{apperror.New(apperror.CodeConflict, "duplicate"), http.StatusConflict},
		{apperror.New(apperror.CodeQuery, "insert employee"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		handler := NewHandler(stubService{
			createFn: func(ctx context.Context, input service.CreateEmployeeInput) (service.EmployeeDTO, error) {
				return service.EmployeeDTO{}, tc.err
			},
		}, zap.NewNop(), 20)

		body := bytes.NewBufferString(`{"full_name":"Anna","post":"Developer","salary":60000,"manager_id":40,"hire_date":"2019-05-20"}`)
		req := httptest.NewRequest(http.MethodPost, "/employees", body)
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, req)

		if recorder.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, recorder.Code)
		}
	}
}

func TestPositionsAndHealthcheck(t *testing.T) {
	routes := NewHandler(stubService{}, zap.NewNop(), 20).Routes()

	recorder := httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/positions", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	var positions []string
	if err := json.NewDecoder(recorder.Body).Decode(&positions); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	if len(positions) != 5 || positions[0] != "CEO" {
		t.Fatalf("unexpected positions: %v", positions)
	}

	recorder = httptest.NewRecorder()
	routes.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if recorder.Code != http.StatusOK || recorder.Body.String() != "ok" {
		t.Fatalf("unexpected healthcheck response: %d %q", recorder.Code, recorder.Body.String())
	}
}

func TestMethodNotAllowed(t *testing.T) {
	handler := NewHandler(stubService{}, zap.NewNop(), 20)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodDelete, "/employees", nil))

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status %d, got %d", http.StatusMethodNotAllowed, recorder.Code)
	}
}
