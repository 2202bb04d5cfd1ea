// ABOUTME: Tests for config loading: YAML parsing, env expansion, durations.
// ABOUTME: Validation failures are exercised through temp config files.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "127.0.0.1:3002"
  base_url: "https://gateway.dentalteam.fr"
database:
  path: "/var/lib/dentalteam/gateway.db"
auth:
  jwt_secret: "super-secret"
  token_ttl: "1h"
chat:
  welcome_delay: "500ms"
  guidance_delay: "600ms"
  suggestion_delay: "1200ms"
  suggestion_confidence: 0.6
sessions:
  sweep_interval: "10m"
  ttl: "30m"
vapi:
  api_key: "vapi-key"
  assistant_id: "assistant-1"
  phone_number_id: "phone-1"
  webhook_secret: "hook-secret"
cors:
  allowed_origin: "https://app.dentalteam.fr"
logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3002", cfg.Server.HTTPAddr)
	assert.Equal(t, "https://gateway.dentalteam.fr", cfg.Server.BaseURL)
	assert.Equal(t, "/var/lib/dentalteam/gateway.db", cfg.Database.Path)
	assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Chat.WelcomeDelay)
	assert.Equal(t, 600*time.Millisecond, cfg.Chat.GuidanceDelay)
	assert.Equal(t, 1200*time.Millisecond, cfg.Chat.SuggestionDelay)
	assert.Equal(t, 0.6, cfg.Chat.SuggestionConfidence)
	assert.Equal(t, 10*time.Minute, cfg.Sessions.SweepInterval)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.TTL)
	assert.Equal(t, "vapi-key", cfg.Vapi.APIKey)
	assert.Equal(t, "https://app.dentalteam.fr", cfg.CORS.AllowedOrigin)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMinimalConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":3002"
database:
  path: "gateway.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Zero(t, cfg.Auth.TokenTTL, "unset durations stay zero for downstream defaults")
	assert.Zero(t, cfg.Chat.WelcomeDelay)
	assert.Zero(t, cfg.Sessions.TTL)
	assert.Empty(t, cfg.Vapi.APIKey)
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("TEST_JWT_SECRET", "from-env")
	t.Setenv("TEST_VAPI_KEY", "vapi-from-env")

	path := writeConfig(t, `
server:
  http_addr: ":3002"
database:
  path: "gateway.db"
auth:
  jwt_secret: "${TEST_JWT_SECRET}"
vapi:
  api_key: "${TEST_VAPI_KEY}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "vapi-from-env", cfg.Vapi.APIKey)
}

func TestLoadUnsetEnvExpandsEmpty(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":3002"
database:
  path: "gateway.db"
auth:
  jwt_secret: "${DEFINITELY_NOT_SET_ANYWHERE}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Auth.JWTSecret)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing http addr",
			content: "database:\n  path: \"gateway.db\"\n",
			wantErr: "server.http_addr",
		},
		{
			name:    "missing database path",
			content: "server:\n  http_addr: \":3002\"\n",
			wantErr: "database.path",
		},
		{
			name: "bad duration",
			content: `
server:
  http_addr: ":3002"
database:
  path: "gateway.db"
sessions:
  ttl: "thirty minutes"
`,
			wantErr: "sessions.ttl",
		},
		{
			name: "confidence out of range",
			content: `
server:
  http_addr: ":3002"
database:
  path: "gateway.db"
chat:
  suggestion_confidence: 1.5
`,
			wantErr: "suggestion_confidence",
		},
		{
			name:    "invalid yaml",
			content: "server: [unclosed",
			wantErr: "parsing config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
