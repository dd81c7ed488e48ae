package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, `
adb: /opt/platform-tools/adb
adb_options: -s emulator-5554
results_directory: out
time_out_ms: "60000"
drawtime: true
`)

	f, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, f.Adb)
	assert.Equal(t, "/opt/platform-tools/adb", *f.Adb)
	assert.Equal(t, "-s emulator-5554", *f.AdbOptions)
	assert.Equal(t, "out", *f.ResultsDirectory)
	assert.Equal(t, "60000", *f.TimeOutMS)
	assert.True(t, *f.DrawTime)
	assert.Nil(t, f.SaveImage)
	assert.Nil(t, f.Verbose)
	assert.Nil(t, f.Format)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, path, "drawtime: [not a bool\n")
		_, err := Load(path)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		writeFile(t, path, "")
		f, err := Load(path)
		require.NoError(t, err)
		assert.Nil(t, f.Adb)
	})
}

func TestResolve(t *testing.T) {
	xdgHome := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", xdgHome)
	xdg.Reload()
	t.Chdir(t.TempDir())

	t.Run("nothing found", func(t *testing.T) {
		f, path, err := Resolve("")
		require.NoError(t, err)
		assert.Empty(t, path)
		assert.Equal(t, &File{}, f)
	})

	t.Run("explicit missing", func(t *testing.T) {
		_, _, err := Resolve("missing.yaml")
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("xdg config", func(t *testing.T) {
		writeFile(t, filepath.Join(xdgHome, AppName, XDGConfigFile), "adb_options: -e\n")

		f, path, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(xdgHome, AppName, XDGConfigFile), path)
		assert.Equal(t, "-e", *f.AdbOptions)
	})

	t.Run("local file wins over xdg", func(t *testing.T) {
		writeFile(t, LocalConfigFile, "adb_options: -d\n")
		t.Cleanup(func() { _ = os.Remove(LocalConfigFile) })

		f, path, err := Resolve("")
		require.NoError(t, err)
		assert.Equal(t, LocalConfigFile, path)
		assert.Equal(t, "-d", *f.AdbOptions)
	})
}
