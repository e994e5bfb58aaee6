package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func writeConfig(t *testing.T, home string, content []byte) {
	t.Helper()
	dir := filepath.Join(home, "paccu")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))
}

func TestLoad_CreatesDefaults(t *testing.T) {
	home := setConfigHome(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Audio Output Switcher", cfg.AppName)
	assert.Equal(t, "Choose output and press ENTER or 'x' to exit", cfg.UI.Title)
	assert.False(t, cfg.Notify)
	assert.FileExists(t, filepath.Join(home, "paccu", "config.yaml"))
}

func TestLoad_NormalizesBlankValues(t *testing.T) {
	home := setConfigHome(t)
	writeConfig(t, home, []byte(strings.Join([]string{
		"server: '  unix:/run/user/1000/pulse/native  '",
		"app_name: ''",
		"notify: true",
		"ui:",
		"  title: '   '",
		"  highlight_symbol: '* '",
		"",
	}, "\n")))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "unix:/run/user/1000/pulse/native", cfg.Server)
	assert.Equal(t, "Audio Output Switcher", cfg.AppName)
	assert.True(t, cfg.Notify)
	assert.Equal(t, "Choose output and press ENTER or 'x' to exit", cfg.UI.Title)
	assert.Equal(t, "* ", cfg.UI.HighlightSymbol)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	home := setConfigHome(t)
	writeConfig(t, home, []byte("ui: [unclosed"))
	_, err := Load()
	assert.Error(t, err)
}
