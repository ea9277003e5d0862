package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/agemaster/internal/domain/agecalc"
	"github.com/yanqian/agemaster/internal/domain/clienterror"
	apperrors "github.com/yanqian/agemaster/pkg/errors"
)

const genericErrorMessage = "An error occurred while processing your request"

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: genericErrorMessage,
		Err:     err,
	}
}

// clientErrorCodes are domain codes whose message is safe to show the caller.
var clientErrorCodes = map[string]struct{}{
	agecalc.CodeInvalidInput:      {},
	agecalc.CodeFutureBirthDate:   {},
	agecalc.CodeDateOrder:         {},
	agecalc.CodeAgeRangeExceeded:  {},
	clienterror.CodeInvalidReport: {},
}

// fromDomainError maps a service error onto the HTTP contract. Unknown
// failures become an opaque 500.
func fromDomainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	if _, ok := clientErrorCodes[code]; ok {
		return NewHTTPError(http.StatusBadRequest, code, apperrors.MessageOf(err), err)
	}
	return NewHTTPError(http.StatusInternalServerError, "internal_error", genericErrorMessage, err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
