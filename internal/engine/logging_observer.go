package engine

import (
	"context"
	"log/slog"
)

// LoggingObserver logs every operation event using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer on logger, or on the
// default logger when logger is nil
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	level := slog.LevelDebug
	if event.Type == EventOpError {
		level = slog.LevelWarn
	}
	lo.logger.Log(context.Background(), level, "db_operation",
		"event", event.Type,
		"op", event.Op,
		"op_id", event.OpID,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
