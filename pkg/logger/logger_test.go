package logger

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
)

const testLogLevel int8 = 0 // zapcore.InfoLevel

func TestGetReturnsLoggerInstance(t *testing.T) {
	logger := Get(testLogLevel)
	if logger == nil {
		t.Fatal("Get should return a non-nil logger")
	}
}

func TestGetReturnsSameInstanceOnSubsequentCalls(t *testing.T) {
	logger1 := Get(testLogLevel)
	logger2 := Get(testLogLevel)
	if logger1 != logger2 {
		t.Error("Get should return the same logger instance on subsequent calls")
	}
}

func TestGetReturnsNoopLoggerIfGlobalLoggerNil(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	logger := Get(testLogLevel)
	if logger != &defaultNoopLogger {
		t.Error("Get should fall back to the noop logger when the global logger is nil")
	}
}

func TestWithLoggerAddsLoggerToContext(t *testing.T) {
	ctx := context.Background()
	logger := Get(testLogLevel)
	newCtx := WithLogger(ctx, logger)

	got := newCtx.Value(loggerContextKey{})
	if got != logger {
		t.Error("WithLogger should store the provided logger in context")
	}
}

func TestWithLoggerReturnsSameContextIfLoggerAlreadySet(t *testing.T) {
	ctx := context.Background()
	logger := Get(testLogLevel)
	ctxWithLogger := context.WithValue(ctx, loggerContextKey{}, logger)

	resultCtx := WithLogger(ctxWithLogger, logger)
	if resultCtx != ctxWithLogger {
		t.Error("WithLogger should return the same context if the logger is already set")
	}
}

func TestFromContextReturnsLoggerFromContext(t *testing.T) {
	ctx := context.Background()
	discard := logr.Discard()
	ctxWithLogger := context.WithValue(ctx, loggerContextKey{}, &discard)

	got := FromContext(ctxWithLogger)
	if got != &discard {
		t.Error("FromContext should return the logger stored in context")
	}
}

func TestFromContextFallsBackToGlobalLogger(t *testing.T) {
	globalLogger := Get(testLogLevel)

	got := FromContext(context.Background())
	if got != globalLogger {
		t.Error("FromContext should return the global logger if none in context")
	}
}

func TestFromContextReturnsNoopLoggerIfNoGlobalOrContextLogger(t *testing.T) {
	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	got := FromContext(context.Background())
	if got != &defaultNoopLogger {
		t.Error("FromContext should return defaultNoopLogger if no logger is set")
	}
}

func TestSyncDoesNotPanicWhenGlobalZapLoggerIsNil(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sync should not panic when globalZapLogger is nil, got: %v", r)
		}
	}()
	Sync()
}

func TestGetNoopLoggerIsNoop(t *testing.T) {
	logger := GetNoopLogger()
	if logger != &defaultNoopLogger {
		t.Fatal("GetNoopLogger should return defaultNoopLogger")
	}
	logger.Info("this should do nothing")
}
