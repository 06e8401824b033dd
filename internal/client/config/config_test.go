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

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8800", c.ServerURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-a", "http://127.0.0.1:9090", "-t", "3"},
			expected: Config{
				ServerURL:      "http://127.0.0.1:9090",
				RequestTimeout: 3 * time.Second,
			},
		},
		{
			name: "unknown flags ignored, defaults preserved",
			args: []string{"cmd", "-z", "1"},
			expected: Config{
				ServerURL:      "http://localhost:8800",
				RequestTimeout: 10 * time.Second,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			os.Args = tc.args

			cfg := &Config{}
			cfg.LoadDefaults()
			parseFlags(cfg)

			assert.Equal(t, tc.expected, *cfg)
		})
	}
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	b, err := json.Marshal(map[string]any{
		"server_url":      "http://example.test:8800",
		"request_timeout": "30s",
	})
	require.NoError(t, err)
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "http://example.test:8800", cfg.ServerURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ServerURL: "http://keep.test"}
		parseJson(cfg)

		assert.Equal(t, "http://keep.test", cfg.ServerURL)
	})
}
