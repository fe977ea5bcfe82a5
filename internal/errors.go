package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeContentTooLong   ErrorCode = "CONTENT_TOO_LONG"
	ErrCodeDuplicateName    ErrorCode = "DUPLICATE_NAME"
	ErrCodeRecordNotFound   ErrorCode = "RECORD_NOT_FOUND"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserFrozen         ErrorCode = "USER_FROZEN"
	ErrCodeMissingToken       ErrorCode = "MISSING_TOKEN"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserDisabled       ErrorCode = "USER_DISABLED"
	ErrCodePermissionDenied   ErrorCode = "PERMISSION_DENIED"
)

// Application ret codes carried in the response envelope. Zero means
// success, everything else identifies one failure kind.
const (
	RetOK               = 0
	RetValidation       = 10001
	RetMethodNotAllowed = 10002
	RetNotFound         = 10010
	RetInternal         = 10020
	RetDuplicateName    = 10022
	RetContentTooLong   = 10023
	RetUserFrozen       = 10030
	RetBadCredentials   = 10031
	RetMissingToken     = 10040
	RetInvalidToken     = 10041
	RetTokenExpired     = 10042
	RetUserNotFound     = 10043
	RetUserDisabled     = 10044
	RetPermissionDenied = 10045
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Ret        int         `json:"ret"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithMessage(msg string) *AppError {
	clone := *e
	clone.Message = msg
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Ret:        RetValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

// NewRequiredFieldError reports one missing request field by name.
func NewRequiredFieldError(field string) *AppError {
	return NewValidationError(fmt.Sprintf("%s is required", field)).WithDetails(ValidationErrors{
		Errors: []ValidationError{
			{Field: field, Message: fmt.Sprintf("%s is required", field)},
		},
	})
}

func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       ErrCodeRecordNotFound,
		Ret:        RetNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string, ret int, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Ret:        ret,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewUnauthorizedError(message string, ret int, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Ret:        ret,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, ret int, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Ret:        ret,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Ret:        RetInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrRecordNotFound = NewNotFoundError("record not found")
	ErrDuplicateName  = NewConflictError("name already exists", RetDuplicateName, ErrCodeDuplicateName)
	ErrContentTooLong = &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeContentTooLong,
		Ret:        RetContentTooLong,
		Message:    "content must not exceed 120 characters",
		StatusCode: http.StatusBadRequest,
	}

	ErrBadCredentials   = NewUnauthorizedError("wrong username or password", RetBadCredentials, ErrCodeInvalidCredentials)
	ErrUserFrozen       = NewForbiddenError("user account is frozen", RetUserFrozen, ErrCodeUserFrozen)
	ErrMissingToken     = NewUnauthorizedError("missing authorization token", RetMissingToken, ErrCodeMissingToken)
	ErrInvalidToken     = NewUnauthorizedError("invalid token", RetInvalidToken, ErrCodeInvalidToken)
	ErrTokenExpired     = NewUnauthorizedError("token has expired", RetTokenExpired, ErrCodeTokenExpired)
	ErrUserNotFound     = NewUnauthorizedError("user no longer exists", RetUserNotFound, ErrCodeUserNotFound)
	ErrUserDisabled     = NewForbiddenError("user account is disabled", RetUserDisabled, ErrCodeUserDisabled)
	ErrPermissionDenied = NewForbiddenError("insufficient permissions", RetPermissionDenied, ErrCodePermissionDenied)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Ret     int         `json:"ret"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Ret:     e.Ret,
		Message: e.Message,
		Details: e.Details,
	})
}
