package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
)

// Init builds the global logger. Production uses the JSON encoder, everything
// else gets the human readable development encoder.
func Init() {
	once.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if os.Getenv("ENV") == "production" {
			l, err = zap.NewProduction()
		} else {
			l, err = zap.NewDevelopment()
		}
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		log = l
	})
}

// L returns the global logger, initializing it on first use.
func L() *zap.Logger {
	Init()
	return log
}

// Named returns a child logger tagged with the component name.
func Named(component string) *zap.Logger {
	return L().Named(component)
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}

func Info(msg string, fields ...zapcore.Field) {
	L().Info(msg, fields...)
}

func Warn(msg string, fields ...zapcore.Field) {
	L().Warn(msg, fields...)
}

func Error(msg string, fields ...zapcore.Field) {
	L().Error(msg, fields...)
}

func Fatal(msg string, fields ...zapcore.Field) {
	L().Fatal(msg, fields...)
}

func Debug(msg string, fields ...zapcore.Field) {
	L().Debug(msg, fields...)
}
