package errors

import (
	"go.uber.org/zap"
)

// LogError logs err with its code attached. Client-side codes are logged at warn level.
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	allFields := make([]zap.Field, 0, len(fields)+2)
	allFields = append(allFields, zap.Error(err))

	code := ErrInternal
	var appErr *AppError
	if As(err, &appErr) {
		code = appErr.Code()
		allFields = append(allFields, zap.String("error_code", code))
	}

	allFields = append(allFields, fields...)

	switch code {
	case ErrInvalidArgument, ErrNotFound, ErrConflict, ErrPaymentRejected, ErrUnauthenticated, ErrUnauthorized:
		logger.Warn(msg, allFields...)
	default:
		logger.Error(msg, allFields...)
	}
}
