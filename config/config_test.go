package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("lang", "", "")
	flags.String("log-dir", "", "")
	flags.Bool("verbose", false, "")
	flags.Int("preview-width", 0, "")
	return flags
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_Defaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := NewLoader(home).Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, 960, cfg.PreviewWidth)
	assert.Equal(t, filepath.Join(home, ".hrslides", "logs"), cfg.LogDir)
	assert.Equal(t, filepath.Join(home, ".claude", "skills"), cfg.SkillsDir)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "sqlite", cfg.History.Engine)
	assert.NoError(t, cfg.Validate())
}

func TestLoader_Precedence(t *testing.T) {
	home := t.TempDir()
	path := writeFile(t, home, "hrslides.yaml", `
language: en
author: DRH Groupe
preview_width: 1280
log_dir: ~/logs
history:
  enabled: true
  engine: sqlite
  dsn: ~/builds.db
`)

	t.Run("file over defaults", func(t *testing.T) {
		l := NewLoader(home)
		cfg, err := l.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, path, l.FileUsed())
		assert.Equal(t, "en", cfg.Language)
		assert.Equal(t, "DRH Groupe", cfg.Author)
		assert.Equal(t, 1280, cfg.PreviewWidth)
		assert.Equal(t, filepath.Join(home, "logs"), cfg.LogDir)
		assert.True(t, cfg.History.Enabled)
		assert.Equal(t, filepath.Join(home, "builds.db"), cfg.History.DSN)
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("HRSLIDES_LANGUAGE", "fr-CA")
		t.Setenv("HRSLIDES_HISTORY_MAX_RETRIES", "3")
		cfg, err := NewLoader(home).Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "fr-CA", cfg.Language)
		assert.Equal(t, 3, cfg.History.MaxRetries)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("HRSLIDES_LANGUAGE", "fr-CA")
		flags := testFlags()
		require.NoError(t, flags.Parse([]string{"--lang", "en-GB", "--preview-width", "640"}))
		cfg, err := NewLoader(home).Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "en-GB", cfg.Language)
		assert.Equal(t, 640, cfg.PreviewWidth)
		// unchanged flags keep lower layers
		assert.Equal(t, filepath.Join(home, "logs"), cfg.LogDir)
	})
}

func TestLoader_BadFile(t *testing.T) {
	home := t.TempDir()
	path := writeFile(t, home, "broken.yaml", "language: [unclosed\n")
	_, err := NewLoader(home).Load(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestKeyMapping(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"env plain", envKey("HRSLIDES_LOG_DIR"), "log_dir"},
		{"env history", envKey("HRSLIDES_HISTORY_ENGINE"), "history.engine"},
		{"env history underscore", envKey("HRSLIDES_HISTORY_MAX_RETRIES"), "history.max_retries"},
		{"flag renamed", flagKey("lang"), "language"},
		{"flag history", flagKey("history-db"), "history.dsn"},
		{"flag kebab", flagKey("preview-width"), "preview_width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		errSubstr string
	}{
		{"ok", Config{PreviewWidth: 960}, ""},
		{"bad width", Config{PreviewWidth: 0}, "preview_width"},
		{"bad engine", Config{PreviewWidth: 1, History: HistoryConfig{Enabled: true, Engine: "duckdb", DSN: "x"}}, "history.engine"},
		{"no dsn", Config{PreviewWidth: 1, History: HistoryConfig{Enabled: true, Engine: "mysql"}}, "history.dsn"},
		{"disabled history ignored", Config{PreviewWidth: 1, History: HistoryConfig{Engine: "duckdb"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/h", expandHome("~", "/h"))
	assert.Equal(t, filepath.Join("/h", "a", "b"), expandHome("~/a/b", "/h"))
	assert.Equal(t, "/abs", expandHome("/abs", "/h"))
	assert.Equal(t, "~user/x", expandHome("~user/x", "/h"))
}
