package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "up", args: []string{"up"}, want: "up"},
		{name: "reset", args: []string{"reset"}, want: "reset"},
		{name: "missing", args: nil, wantErr: true},
		{name: "too many", args: []string{"up", "down"}, wantErr: true},
		{name: "unsupported", args: []string{"create"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommand(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadConfigPrefersExplicitURL(t *testing.T) {
	cfg, err := loadConfig("postgres://u:p@localhost:5432/blog")
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/blog", cfg.Database.URL)
	assert.Equal(t, "info", cfg.Server.LogLevel)
}

func TestSlogGooseLoggerExitsOnFatal(t *testing.T) {
	var buf bytes.Buffer
	exitCode := -1
	l := newSlogGooseLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	l.exit = func(code int) { exitCode = code }

	l.Printf("OK   %s", "00001_create_users_and_posts.sql")
	assert.Equal(t, -1, exitCode, "Printf must not exit")

	l.Fatalf("failed: %d", 1)
	assert.Equal(t, 1, exitCode)

	dec := json.NewDecoder(&buf)
	var first, second map[string]interface{}
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "OK   00001_create_users_and_posts.sql", first["msg"])
	assert.Equal(t, "ERROR", second["level"])
	assert.Equal(t, "failed: 1", second["msg"])
}

func TestRunRejectsBadInvocation(t *testing.T) {
	err := run(context.Background(), []string{"-database-url", "postgres://localhost/blog", "sideways"})
	assert.ErrorContains(t, err, "unsupported command")
}
