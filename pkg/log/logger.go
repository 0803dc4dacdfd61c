package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"

	lalgerrors "github.com/YuminosukeSato/lalg/pkg/errors"
)

// SetupLogger configures process-wide logging at the given level.
// It installs the slog JSON default handler, a zerolog-backed provider writing to
// stderr and routes library warnings into that provider.
func SetupLogger(loglevel string) error {
	return SetupLoggerTo(os.Stderr, loglevel)
}

// SetupLoggerTo is SetupLogger with an explicit destination.
func SetupLoggerTo(w io.Writer, loglevel string) error {
	level, err := ParseLevel(loglevel)
	if err != nil {
		return err
	}

	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     slog.Level(level),
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{
					Key:   "severity",
					Value: attr.Value,
				}
			case slog.MessageKey:
				attr = slog.Attr{
					Key:   "message",
					Value: attr.Value,
				}
			}
			return attr
		},
	}
	handler := slog.NewJSONHandler(w, &ops)
	slog.SetDefault(slog.New(WrapByErrFmtHandler(handler)))

	provider := NewZerologProvider(w, level)
	SetProvider(provider)
	lalgerrors.SetZerologWarnFunc(WarnFunc(provider.GetLoggerWithName("warnings")))
	return nil
}

// WarnFunc adapts a Logger into the warning sink used by pkg/errors.
// Warnings implementing zerolog.LogObjectMarshaler keep their structured fields.
func WarnFunc(logger Logger) func(error) {
	return func(w error) {
		if zl, ok := logger.(interface{ Zerolog() zerolog.Logger }); ok {
			z := zl.Zerolog()
			ev := z.Warn()
			if m, ok := w.(zerolog.LogObjectMarshaler); ok {
				ev = ev.EmbedObject(m)
			}
			ev.Msg(w.Error())
			return
		}
		logger.Warn(w.Error(), ErrorTypeKey, fmt.Sprintf("%T", w))
	}
}

// ParseLevel converts a textual level ("debug", "info", "warn", "error") to a Level.
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, lalgerrors.NewValidationError("log_level", "must be one of debug, info, warn, error", level)
	}
}

// ToLogLevel converts a textual level to slog.Level, panicking on unknown input.
func ToLogLevel(level string) slog.Level {
	l, err := ParseLevel(level)
	if err != nil {
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
	return slog.Level(l)
}

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}
