package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iline-employees/internal/apperror"
)

func TestParseSalary(t *testing.T) {
	value, err := ParseSalary(" 123456.78 ")
	require.NoError(t, err)
	assert.InDelta(t, 123456.78, value, 1e-9)

	_, err = ParseSalary("a lot")
	assert.Equal(t, apperror.CodeInputCoercion, apperror.GetCode(err))
}

func TestParseManagerID(t *testing.T) {
	value, err := ParseManagerID("31")
	require.NoError(t, err)
	assert.Equal(t, 31, value)

	for _, raw := range []string{"", "3.5", "boss"} {
		_, err = ParseManagerID(raw)
		assert.Equal(t, apperror.CodeInputCoercion, apperror.GetCode(err), "input %q", raw)
	}
}

func TestParseHireDate(t *testing.T) {
	value, err := ParseHireDate("2021-02-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, time.February, 3, 0, 0, 0, 0, time.UTC), value)

	_, err = ParseHireDate("03.02.2021")
	assert.Equal(t, apperror.CodeInputCoercion, apperror.GetCode(err))
}
