package errors

import "net/http"

// Error codes shared by every transport.
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrUnauthorized    = "UNAUTHORIZED"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
	ErrNotImplemented  = "NOT_IMPLEMENTED"
	ErrUnavailable     = "UNAVAILABLE"
	ErrPaymentRejected = "PAYMENT_REJECTED"
)

var httpStatusByCode = map[string]int{
	ErrInternal:        http.StatusInternalServerError,
	ErrNotFound:        http.StatusNotFound,
	ErrInvalidArgument: http.StatusBadRequest,
	ErrUnauthenticated: http.StatusUnauthorized,
	ErrUnauthorized:    http.StatusForbidden,
	ErrConflict:        http.StatusConflict,
	ErrTimeout:         http.StatusGatewayTimeout,
	ErrNotImplemented:  http.StatusNotImplemented,
	ErrUnavailable:     http.StatusServiceUnavailable,
	ErrPaymentRejected: http.StatusPaymentRequired,
}

var codeByHTTPStatus = func() map[int]string {
	m := make(map[int]string, len(httpStatusByCode))
	for code, status := range httpStatusByCode {
		m[status] = code
	}
	return m
}()

// HTTPStatus returns the HTTP status for code. Unknown codes are 500.
func HTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// CodeForHTTPStatus is the inverse of HTTPStatus. Unmapped statuses are INTERNAL.
func CodeForHTTPStatus(status int) string {
	if code, ok := codeByHTTPStatus[status]; ok {
		return code
	}
	return ErrInternal
}
