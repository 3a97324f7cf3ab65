// Package logger provides the process-wide structured logger built on Zap.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	mu    sync.Mutex
)

// Init builds the global logger for env. "production" logs JSON at info
// level, "test" discards everything, anything else logs human-readable
// console output at debug level. Only the first call has an effect.
func Init(env string) {
	mu.Lock()
	defer mu.Unlock()

	if sugar != nil {
		return
	}
	sugar = build(env).Sugar()
}

func build(env string) *zap.Logger {
	var (
		base *zap.Logger
		err  error
	)

	switch env {
	case "production":
		base, err = zap.NewProduction()
	case "test":
		return zap.NewNop()
	default:
		base, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return base.With(zap.String("app", "cashflow"))
}

// Get returns the global logger, initialising a development logger on first use.
func Get() *zap.SugaredLogger {
	mu.Lock()
	l := sugar
	mu.Unlock()

	if l == nil {
		Init("development")
		return Get()
	}
	return l
}

// Sync flushes buffered entries. Call before the process exits.
func Sync() {
	mu.Lock()
	defer mu.Unlock()

	if sugar != nil {
		_ = sugar.Sync()
	}
}
