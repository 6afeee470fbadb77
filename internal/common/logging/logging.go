package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
)

// New builds the program logger. w must not be the stream metric lines are written to.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewContextHandler(
		slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		}),
	)).With(NewProgramAttr())
}

func NewProgramAttr() slog.Attr {
	hostname, _ := os.Hostname()

	version := "(devel)"
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		version = buildInfo.Main.Version
	}

	return slog.Group("program",
		slog.Int("pid", os.Getpid()),
		slog.String("machine", hostname),
		slog.String("version", version),
	)
}

func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

func ParseLevel(levelStr string) (slog.Level, error) {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.Level(-1), fmt.Errorf("invalid log level: %s", levelStr)
	}
}
