package apperror

import "errors"

type Code string

const (
	CodeValidation    Code = "validation"
	CodeNotFound      Code = "not_found"
	CodeConflict      Code = "conflict"
	CodeConnection    Code = "connection"
	CodeQuery         Code = "query"
	CodeInputCoercion Code = "input_coercion"
	CodeInternal      Code = "internal"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a code and message to a cause. A nil cause yields nil.
func Wrap(code Code, message string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func GetCode(err error) Code {
	if err == nil {
		return ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}

	return CodeInternal
}

// Recoverable reports whether an interactive session can keep going after err.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case CodeValidation, CodeNotFound, CodeConflict, CodeQuery, CodeInputCoercion:
		return true
	default:
		return false
	}
}
