package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "encyclopedia.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "listen: :8080\nentries_dir: /srv/wiki\nmarkup: goldmark\nlog_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "/srv/wiki", cfg.EntriesDir)
	assert.Equal(t, "goldmark", cfg.Markup)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "entries_dir: wiki\n"))
	require.NoError(t, err)
	assert.Equal(t, "wiki", cfg.EntriesDir)
	assert.Equal(t, "localhost:63411", cfg.Listen)
}

func TestLoadInvalid(t *testing.T) {
	for _, body := range []string{
		"markup: markdown2\n",
		"log_level: loud\n",
		"entries_dir: \"\"\n",
		"listen: [\n",
	} {
		_, err := Load(writeConfig(t, body))
		assert.Error(t, err, body)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
