package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8082", c.Addr())
	assert.Equal(t, []string{"*"}, c.AllowOrigins)
	assert.Len(t, c.Palette, 12)
	assert.Equal(t, 3.0, c.ExportScale)
	assert.Equal(t, 2*time.Hour, c.SessionTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CHORO_PORT", "9090")
	t.Setenv("CHORO_ALLOW_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CHORO_PALETTE", "#fff,#000")
	t.Setenv("CHORO_SESSION_TTL", "15m")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.AllowOrigins)
	assert.Equal(t, []string{"#fff", "#000"}, c.Palette)
	assert.Equal(t, 15*time.Minute, c.SessionTTL)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "choro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 7000\nexport_scale: 2\npalette: ['#111', '#222', '#333']\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, c.Port)
	assert.Equal(t, 2.0, c.ExportScale)
	assert.Equal(t, []string{"#111", "#222", "#333"}, c.Palette)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
