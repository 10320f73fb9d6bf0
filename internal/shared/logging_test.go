package shared

import (
	"context"
	"log/slog"
	"testing"
)

func TestInitLogger_Levels(t *testing.T) {
	ctx := context.Background()

	l := InitLogger(LoggingConfig{Format: "text", Level: "debug"})
	if !l.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug level must enable debug records")
	}

	l = InitLogger(LoggingConfig{Format: "json", Level: "error"})
	if l.Enabled(ctx, slog.LevelWarn) {
		t.Error("error level must suppress warn records")
	}

	// Unknown values fall back to json/info.
	l = InitLogger(LoggingConfig{Format: "carrier-pigeon", Level: "verbose"})
	if l.Enabled(ctx, slog.LevelDebug) || !l.Enabled(ctx, slog.LevelInfo) {
		t.Error("unknown level must fall back to info")
	}
}
