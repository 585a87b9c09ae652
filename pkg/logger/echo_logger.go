package logger

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/wekeepgrowing/juansite-billing/pkg/errors"
)

// quietPaths are probed constantly and not worth a log line each.
var quietPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// NewEchoRequestLogger logs one line per request. Server errors log at error,
// client errors at warn and everything else at info. Credentials are never logged.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return quietPaths[c.Request().URL.Path]
		},
		HandleError:  true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogRequestID: true,
		LogUserAgent: true,
		LogStatus:    true,
		LogError:     true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("http.method", v.Method),
				zap.String("http.path", v.URIPath),
				zap.String("http.route", v.RoutePath),
				zap.Int("http.status", v.Status),
				zap.Duration("http.latency", v.Latency),
				zap.String("http.remote_ip", v.RemoteIP),
				zap.String("http.user_agent", v.UserAgent),
			}
			if v.RequestID != "" {
				fields = append(fields, zap.String("request_id", v.RequestID))
			}
			if userID, ok := c.Get("user_id").(string); ok {
				fields = append(fields, zap.String("user_id", userID))
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}

			level := zapcore.InfoLevel
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = zapcore.ErrorLevel
			case v.Status >= http.StatusBadRequest:
				level = zapcore.WarnLevel
			}
			logger.Log(level, "HTTP request", fields...)
			return nil
		},
	})
}

// WithEchoLogger installs the zap-backed echo.Logger and an error handler that
// renders every error as {"error": ..., "code": ...}.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.Logger = NewEchoZapLogger(logger)
	e.HTTPErrorHandler = newErrorHandler(logger)
}

func newErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		he, ok := err.(*echo.HTTPError)
		if !ok {
			he = apperrors.ToHTTPError(err)
		}

		code := errorCode(err, he)
		if he.Code >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.Error(err),
				zap.Int("http.status", he.Code),
				zap.String("http.method", c.Request().Method),
				zap.String("http.path", c.Request().URL.Path))
		}

		if c.Response().Committed {
			return
		}

		message, _ := he.Message.(string)
		if message == "" {
			message = http.StatusText(he.Code)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, echo.Map{"error": message, "code": code})
		}
		if err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
	}
}

// errorCode prefers the code of an AppError cause and otherwise derives it from
// the HTTP status, so plain echo errors such as 404 still get a meaningful code.
func errorCode(err error, he *echo.HTTPError) string {
	for _, candidate := range []error{he.Internal, err} {
		if candidate == nil {
			continue
		}
		var appErr *apperrors.AppError
		if apperrors.As(candidate, &appErr) {
			return appErr.Code()
		}
	}
	return apperrors.CodeOf(apperrors.FromHTTPError(he))
}

// EchoZapLogger adapts zap to echo.Logger. Level, output, header and prefix
// setters are ignored; zap's own configuration applies.
type EchoZapLogger struct {
	Logger *zap.Logger
	sugar  *zap.SugaredLogger
}

func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	return &EchoZapLogger{Logger: logger, sugar: logger.Sugar()}
}

func (l *EchoZapLogger) Output() io.Writer { return zapWriter{l.Logger} }
func (l *EchoZapLogger) SetOutput(io.Writer) {}
func (l *EchoZapLogger) Level() log.Lvl      { return log.INFO }
func (l *EchoZapLogger) SetLevel(log.Lvl)    {}
func (l *EchoZapLogger) SetHeader(string)    {}
func (l *EchoZapLogger) Prefix() string      { return "" }
func (l *EchoZapLogger) SetPrefix(string)    {}

func (l *EchoZapLogger) Print(i ...interface{})            { l.sugar.Info(i...) }
func (l *EchoZapLogger) Printf(f string, i ...interface{}) { l.sugar.Infof(f, i...) }
func (l *EchoZapLogger) Printj(j log.JSON)                 { l.json(zapcore.InfoLevel, j) }
func (l *EchoZapLogger) Debug(i ...interface{})            { l.sugar.Debug(i...) }
func (l *EchoZapLogger) Debugf(f string, i ...interface{}) { l.sugar.Debugf(f, i...) }
func (l *EchoZapLogger) Debugj(j log.JSON)                 { l.json(zapcore.DebugLevel, j) }
func (l *EchoZapLogger) Info(i ...interface{})             { l.sugar.Info(i...) }
func (l *EchoZapLogger) Infof(f string, i ...interface{})  { l.sugar.Infof(f, i...) }
func (l *EchoZapLogger) Infoj(j log.JSON)                  { l.json(zapcore.InfoLevel, j) }
func (l *EchoZapLogger) Warn(i ...interface{})             { l.sugar.Warn(i...) }
func (l *EchoZapLogger) Warnf(f string, i ...interface{})  { l.sugar.Warnf(f, i...) }
func (l *EchoZapLogger) Warnj(j log.JSON)                  { l.json(zapcore.WarnLevel, j) }
func (l *EchoZapLogger) Error(i ...interface{})            { l.sugar.Error(i...) }
func (l *EchoZapLogger) Errorf(f string, i ...interface{}) { l.sugar.Errorf(f, i...) }
func (l *EchoZapLogger) Errorj(j log.JSON)                 { l.json(zapcore.ErrorLevel, j) }
func (l *EchoZapLogger) Fatal(i ...interface{})            { l.sugar.Fatal(i...) }
func (l *EchoZapLogger) Fatalf(f string, i ...interface{}) { l.sugar.Fatalf(f, i...) }
func (l *EchoZapLogger) Fatalj(j log.JSON)                 { l.json(zapcore.FatalLevel, j) }
func (l *EchoZapLogger) Panic(i ...interface{})            { l.sugar.Panic(i...) }
func (l *EchoZapLogger) Panicf(f string, i ...interface{}) { l.sugar.Panicf(f, i...) }
func (l *EchoZapLogger) Panicj(j log.JSON)                 { l.json(zapcore.PanicLevel, j) }

func (l *EchoZapLogger) json(level zapcore.Level, j log.JSON) {
	fields := make([]zap.Field, 0, len(j))
	for k, v := range j {
		fields = append(fields, zap.Any(k, v))
	}
	l.Logger.Log(level, "echo", fields...)
}

type zapWriter struct {
	logger *zap.Logger
}

func (w zapWriter) Write(p []byte) (int, error) {
	w.logger.Info(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
