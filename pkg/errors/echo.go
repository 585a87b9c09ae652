package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ToHTTPError converts err for echo. Only an AppError's message reaches the client;
// the full chain is kept as the internal error for logging.
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return echo.NewHTTPError(HTTPStatus(appErr.Code()), appErr.Message()).SetInternal(err)
	}

	var he *echo.HTTPError
	if As(err, &he) {
		return he
	}

	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)).SetInternal(err)
}

// FromHTTPError converts an echo error into an AppError with the matching code.
func FromHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return err
	}

	var he *echo.HTTPError
	if As(err, &he) {
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return NewAppError(CodeForHTTPStatus(he.Code), msg, nil)
	}

	return NewAppError(ErrInternal, err.Error(), err)
}
