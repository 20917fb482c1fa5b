package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"iline-employees/internal/apperror"
)

// Free-text coercions for manual entry. Each failure is an input_coercion
// error so callers can tell bad typing apart from database trouble.

func ParseSalary(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, apperror.New(apperror.CodeInputCoercion, "salary must be a number")
	}
	return value, nil
}

func ParseManagerID(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperror.New(apperror.CodeInputCoercion, "manager id must be an integer")
	}
	return value, nil
}

func ParseHireDate(raw string) (time.Time, error) {
	value, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperror.New(apperror.CodeInputCoercion, "hire date must be in YYYY-MM-DD format")
	}
	return value, nil
}
