package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger forwards pgx trace events to zerolog under component=pgx.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	return &pgxLogger{logger: logger.With().Str("component", "pgx").Logger()}
}

// Log implements tracelog.Logger. Query arguments are only attached at trace
// level since they may carry user content.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	var event *zerolog.Event
	switch level {
	case tracelog.LogLevelNone:
		return
	case tracelog.LogLevelTrace:
		event = l.logger.Trace()
	case tracelog.LogLevelDebug:
		event = l.logger.Debug()
	case tracelog.LogLevelInfo:
		event = l.logger.Info()
	case tracelog.LogLevelWarn:
		event = l.logger.Warn()
	default:
		event = l.logger.Error()
	}
	if !event.Enabled() {
		return
	}

	for k, v := range data {
		switch val := v.(type) {
		case error:
			event = event.AnErr(k, val)
		case time.Duration:
			event = event.Dur(k, val)
		case string:
			event = event.Str(k, val)
		default:
			if k == "args" && level != tracelog.LogLevelTrace {
				continue
			}
			event = event.Interface(k, val)
		}
	}
	event.Msg(msg)
}

// traceLevel maps the logger's effective level onto pgx's.
func traceLevel(level zerolog.Level) tracelog.LogLevel {
	switch {
	case level <= zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case level == zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case level == zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case level == zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
