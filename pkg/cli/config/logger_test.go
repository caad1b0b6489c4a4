package config_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/ngfetch/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "Valid level: debug", level: "debug"},
		{name: "Valid level: DEBUG (case insensitive)", level: "DEBUG"},
		{name: "Valid level: info", level: "info"},
		{name: "Valid level: warn", level: "warn"},
		{name: "Valid level: error", level: "error"},
		{name: "Invalid level: invalid", level: "invalid", wantErr: true},
		{name: "Invalid level: empty string", level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &config.Logger{
				Level:  tt.level,
				Format: "text",
				Writer: &bytes.Buffer{},
			}

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, result).Nil()
				return
			}
			gt.NoError(t, err)
			gt.Value(t, result).NotNil()
		})
	}
}

func TestLogger_Configure_Format(t *testing.T) {
	for _, format := range []string{"console", "text", "json", "JSON"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &config.Logger{Level: "info", Format: format, Writer: &buf}

			result, err := logger.Configure()
			gt.NoError(t, err).Required()

			result.Info("test log message")
			gt.String(t, buf.String()).Contains("test log message")
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		logger := &config.Logger{Level: "info", Format: "xml"}
		_, err := logger.Configure()
		gt.Error(t, err)
	})
}

func TestLogger_Configure_LevelBehavior(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "warn", Format: "text", Writer: &buf}

	result, err := logger.Configure()
	gt.NoError(t, err).Required()

	result.Info("hidden message")
	result.Warn("visible message")

	gt.False(t, strings.Contains(buf.String(), "hidden message"))
	gt.String(t, buf.String()).Contains("visible message")
}

func TestLogger_Configure_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := &config.Logger{Level: "info", Format: "json", Writer: &buf}

	result, err := logger.Configure()
	gt.NoError(t, err).Required()

	src := config.Source{
		Name:            "gcs",
		CredentialsJSON: `{"private_key":"very-secret-key"}`,
	}
	sentryCfg := config.Sentry{DSN: "https://key@o0.ingest.sentry.io/1"}
	result.Info("configured", slog.Any("source", src), slog.Any("sentry", sentryCfg))

	out := buf.String()
	gt.String(t, out).Contains("configured")
	gt.String(t, out).Contains("gcs")
	gt.False(t, strings.Contains(out, "very-secret-key"))
	gt.False(t, strings.Contains(out, "key@o0.ingest.sentry.io"))
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()

	gt.Equal(t, len(flags), 2)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		names := flag.Names()
		if len(names) > 0 {
			flagNames[names[0]] = true
		}
	}

	gt.True(t, flagNames["log-level"])
	gt.True(t, flagNames["log-format"])
}
