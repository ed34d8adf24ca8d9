package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_AllSections(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{
			"token_sign_key":     "key",
			"token_issuer":       "iss",
			"token_duration":     "30m",
			"max_sessions":       4,
			"password_hash_cost": 12,
			"version":            "2.0.0",
		},
		"storage": map[string]any{
			"db": map[string]any{"dsn": "postgres://localhost/db", "mongo_database": "m"},
		},
		"server": map[string]any{
			"http_address":     "localhost:4000",
			"request_timeout":  "5s",
			"shutdown_timeout": float64(time.Second),
		},
		"avatar": map[string]any{"max_bytes": 10, "size": 64, "concurrency": 1},
		"adapter": map[string]any{
			"mail_api_url":    "http://mail",
			"mail_api_key":    "mk",
			"mail_from":       "a@b.c",
			"request_timeout": "1s",
		},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.App.TokenSignKey)
	assert.Equal(t, "iss", cfg.App.TokenIssuer)
	assert.Equal(t, 30*time.Minute, cfg.App.TokenDuration)
	assert.Equal(t, 4, cfg.App.MaxSessions)
	assert.Equal(t, 12, cfg.App.PasswordHashCost)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "postgres://localhost/db", cfg.Storage.DB.DSN)
	assert.Equal(t, "m", cfg.Storage.DB.MongoDatabase)
	assert.Equal(t, "localhost:4000", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(10), cfg.Avatar.MaxBytes)
	assert.Equal(t, 64, cfg.Avatar.Size)
	assert.Equal(t, 1, cfg.Avatar.Concurrency)
	assert.Equal(t, "http://mail", cfg.Adapter.MailAPIURL)
	assert.Equal(t, "mk", cfg.Adapter.MailAPIKey)
	assert.Equal(t, "a@b.c", cfg.Adapter.MailFrom)
	assert.Equal(t, time.Second, cfg.Adapter.RequestTimeout)
}

func TestParseJSON_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
		_, err := parseJSON(path)
		assert.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		path := writeTempJSONConfig(t, map[string]any{"app": map[string]any{"token_duration": "soon"}})
		_, err := parseJSON(path)
		assert.Error(t, err)
	})
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	d := Duration(90 * time.Second)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(data))

	var back Duration
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}
