package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrCollectorNotFound = errors.New("collector not found")
	ErrInvalidRecord     = errors.New("invalid record")
	ErrInvalidQuery      = errors.New("invalid query")
	ErrReportNotFound    = errors.New("audit report not found")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeMemberNotFound    = "MEMBER_NOT_FOUND"
	ErrCodeCollectorNotFound = "COLLECTOR_NOT_FOUND"
	ErrCodeInvalidRecord     = "INVALID_RECORD"
	ErrCodeInvalidQuery      = "INVALID_QUERY"
	ErrCodeReportNotFound    = "REPORT_NOT_FOUND"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// CodeOf returns the code of the first BusinessError in err's chain, or an
// empty string.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// MessageOf returns the client-facing message of the first BusinessError in
// err's chain.
func MessageOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	return ""
}

func WrapMemberNotFound(memberID string) *BusinessError {
	return NewBusinessError(
		ErrCodeMemberNotFound,
		fmt.Sprintf("Member with ID %s not found", memberID),
		ErrMemberNotFound,
	)
}

func WrapCollectorNotFound(name string) *BusinessError {
	return NewBusinessError(
		ErrCodeCollectorNotFound,
		fmt.Sprintf("Collector %q not found", name),
		ErrCollectorNotFound,
	)
}

// WrapInvalidRecord reports an input-shape problem in the index-th record of
// the given kind.
func WrapInvalidRecord(kind string, index int, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRecord,
		fmt.Sprintf("%s at index %d is malformed: %v", kind, index, err),
		ErrInvalidRecord,
	)
}

func WrapInvalidQuery(detail string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidQuery,
		detail,
		ErrInvalidQuery,
	)
}

func WrapReportNotFound() *BusinessError {
	return NewBusinessError(
		ErrCodeReportNotFound,
		"No audit report has been stored yet",
		ErrReportNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
