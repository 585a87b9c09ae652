// Package logger builds the service's zap logger and adapts it to echo, gorm and gRPC.
package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger settings.
type Config struct {
	// Level is one of debug, info, warn, error, dpanic, panic, fatal. Unknown levels mean info.
	Level string `mapstructure:"level"`
	// Format is json or console.
	Format string `mapstructure:"format"`
	// Output is stdout, stderr or file.
	Output string `mapstructure:"output"`
	// FilePath is used when Output is file.
	FilePath    string `mapstructure:"file_path"`
	Development bool   `mapstructure:"development"`
}

func (c Config) level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func (c Config) encoder() zapcore.Encoder {
	var ec zapcore.EncoderConfig
	if c.Development {
		ec = zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec = zap.NewProductionEncoderConfig()
		ec.TimeKey = "@timestamp"
		ec.LevelKey = "log.level"
		ec.MessageKey = "message"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	if c.Format == "console" {
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

func (c Config) sink() (zapcore.WriteSyncer, error) {
	switch c.Output {
	case "stderr":
		return zapcore.Lock(os.Stderr), nil
	case "file":
		if c.FilePath == "" {
			return nil, fmt.Errorf("log.file_path is required when log.output is file")
		}
		file, err := os.OpenFile(c.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return zapcore.AddSync(file), nil
	default:
		return zapcore.Lock(os.Stdout), nil
	}
}

// NewZapLogger builds a zap logger from config. Errors carry stack traces.
func NewZapLogger(config Config) (*zap.Logger, error) {
	sink, err := config.sink()
	if err != nil {
		return nil, err
	}

	opts := []zap.Option{zap.AddStacktrace(zapcore.ErrorLevel)}
	if config.Development {
		opts = append(opts, zap.AddCaller(), zap.Development())
	}

	return zap.New(zapcore.NewCore(config.encoder(), sink, config.level()), opts...), nil
}
