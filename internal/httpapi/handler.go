package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"iline-employees/internal/apperror"
	"iline-employees/internal/service"
)

const maxPageSize = 500

type Handler struct {
	service         service.Directory
	logger          *zap.Logger
	defaultPageSize int
}

func NewHandler(svc service.Directory, logger *zap.Logger, defaultPageSize int) *Handler {
	if defaultPageSize < 1 {
		defaultPageSize = 20
	}
	return &Handler{
		service:         svc,
		logger:          logger,
		defaultPageSize: defaultPageSize,
	}
}

// Routes mounts the API on a fresh mux wrapped in request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/employees", h)
	mux.Handle("/positions", h)
	mux.HandleFunc("/healthcheck", healthcheck)
	return loggingMiddleware(h.logger, mux)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch strings.Trim(r.URL.Path, "/") {
	case "employees":
		switch r.Method {
		case http.MethodGet:
			h.handleListEmployees(w, r)
		case http.MethodPost:
			h.handleCreateEmployee(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return

	case "positions":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, h.service.Positions())
		return
	}

	writeError(w, http.StatusNotFound, "route not found")
}

type createEmployeeRequest struct {
	FullName  string   `json:"full_name"`
	Post      string   `json:"post"`
	Salary    *float64 `json:"salary"`
	ManagerID *int     `json:"manager_id"`
	HireDate  string   `json:"hire_date"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	page, size, err := parsePaging(r, h.defaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := h.service.Count(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	items, err := h.service.ListPage(r.Context(), page, size)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, service.Page{
		Number: page,
		Size:   size,
		Total:  total,
		Items:  items,
	})
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Salary == nil {
		writeError(w, http.StatusBadRequest, "salary is required")
		return
	}
	if req.ManagerID == nil {
		writeError(w, http.StatusBadRequest, "manager_id is required")
		return
	}

	hireDate, err := service.ParseHireDate(req.HireDate)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	employee, err := h.service.CreateEmployee(r.Context(), service.CreateEmployeeInput{
		FullName:  req.FullName,
		Post:      req.Post,
		Salary:    *req.Salary,
		ManagerID: req.ManagerID,
		HireDate:  hireDate,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

func (h *Handler) respondWithError(w http.ResponseWriter, err error) {
	switch apperror.GetCode(err) {
	case apperror.CodeValidation, apperror.CodeInputCoercion:
		writeError(w, http.StatusBadRequest, err.Error())
	case apperror.CodeNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case apperror.CodeConflict:
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("unexpected error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func loggingMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request",
			zap.String("method", r.Method),
			zap.String("uri", r.URL.RequestURI()),
			zap.Duration("duration", time.Since(start)))
	})
}

func healthcheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func decodeJSON(r *http.Request, target interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return errors.New("invalid JSON body")
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != io.EOF {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

func parsePaging(r *http.Request, defaultSize int) (int, int, error) {
	query := r.URL.Query()

	page := 1
	if raw := strings.TrimSpace(query.Get("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
		page = parsed
	}

	size := defaultSize
	if raw := strings.TrimSpace(query.Get("size")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxPageSize {
			return 0, 0, errors.New("size must be between 1 and 500")
		}
		size = parsed
	}

	return page, size, nil
}
