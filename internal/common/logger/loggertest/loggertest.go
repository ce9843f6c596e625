// Package loggertest даёт логгер, события которого можно проверить в тестах.
package loggertest

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"house-designer/internal/common/logger"
)

// Observed возвращает логгер и наблюдатель за записанными событиями.
func Observed() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}
