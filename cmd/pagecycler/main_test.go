package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msaeedsaeedi/pagecycler/internal/config"
	"github.com/msaeedsaeedi/pagecycler/internal/domain"
)

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestNewRootCmdFlags(t *testing.T) {
	cmd := newRootCmd(&options{})

	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{name: "time-out-ms", shorthand: "t", defValue: ""},
		{name: "verbose", shorthand: "v", defValue: "false"},
		{name: "adb-options", shorthand: "a", defValue: ""},
		{name: "results-directory", shorthand: "r", defValue: "layout-test-results"},
		{name: "drawtime", shorthand: "d", defValue: "false"},
		{name: "save-image", shorthand: "s", defValue: ""},
		{name: "adb", defValue: "adb"},
		{name: "json", defValue: "false"},
		{name: "config", defValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestExecuteNoArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := execute(context.Background(), nil, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Equal(t, usageHint+"\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestExecuteConflictingFormats(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := execute(context.Background(),
		[]string{"--config", emptyConfig(t), "--json", "--tui", "file:///sdcard/x.html"},
		&stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), domain.ErrConflictingFormats.Error())
}

func TestExecuteUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := execute(context.Background(), []string{"--bogus"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "unknown flag: --bogus")
	assert.Contains(t, stderr.String(), "Usage:")
}

func TestExecuteMissingConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := execute(context.Background(),
		[]string{"--config", filepath.Join(t.TempDir(), "nope.yaml"), "file:///sdcard/x.html"},
		&stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), config.ErrConfigNotFound.Error())
}

func TestBuildRunConfig(t *testing.T) {
	opts := &options{
		timeoutMS:  "1000",
		adbOptions: "-s serial",
		resultsDir: "out",
		drawTime:   true,
		saveImage:  "/sdcard/img",
		adb:        "adb",
		json:       true,
	}

	cfg, err := buildRunConfig([]string{"file:///sdcard/start.html?auto=1", "&iterations=10"}, opts)
	require.NoError(t, err)

	assert.Equal(t, "file:///sdcard/start.html?auto=1 &iterations=10", cfg.Target)
	assert.Equal(t, "1000", cfg.TimeoutMS)
	assert.Equal(t, "-s serial", cfg.BridgeOptions)
	assert.Equal(t, "out", cfg.ResultsDir)
	assert.True(t, cfg.DrawTime)
	assert.Equal(t, "/sdcard/img", cfg.SaveImage)
	assert.Equal(t, domain.FormatJSON, cfg.Format)
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		opts    options
		want    domain.OutputFormat
		wantErr bool
	}{
		{name: "default raw", want: domain.FormatRaw},
		{name: "raw", opts: options{raw: true}, want: domain.FormatRaw},
		{name: "json", opts: options{json: true}, want: domain.FormatJSON},
		{name: "tui", opts: options{tui: true}, want: domain.FormatTUI},
		{name: "conflict", opts: options{raw: true, json: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputFormat(&tt.opts)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrConflictingFormats)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyConfigFlagsWin(t *testing.T) {
	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{"-r", "from-flag", "--json"}))

	adb := "/opt/adb"
	results := "from-config"
	drawtime := true
	format := "tui"
	require.NoError(t, applyConfig(cmd.Flags(), opts, &config.File{
		Adb:              &adb,
		ResultsDirectory: &results,
		DrawTime:         &drawtime,
		Format:           &format,
	}))

	assert.Equal(t, "/opt/adb", opts.adb)
	assert.Equal(t, "from-flag", opts.resultsDir)
	assert.True(t, opts.drawTime)
	assert.True(t, opts.json)
	assert.False(t, opts.tui)
}

func TestApplyConfigUnknownFormat(t *testing.T) {
	opts := &options{}
	cmd := newRootCmd(opts)
	require.NoError(t, cmd.ParseFlags(nil))

	format := "xml"
	err := applyConfig(cmd.Flags(), opts, &config.File{Format: &format})

	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	assert.False(t, opts.raw)
}

func TestExecuteConfigUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o644))
	var stdout, stderr bytes.Buffer

	code := execute(context.Background(), []string{"--config", path, "file:///sdcard/x.html"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), domain.ErrInvalidFormat.Error())
	assert.Contains(t, stderr.String(), `"xml"`)
}

func TestRootCmdDocumentsQuoting(t *testing.T) {
	cmd := newRootCmd(&options{})

	assert.Contains(t, cmd.Long, "double\nquotes")
	assert.Contains(t, cmd.Long, `not "...?auto=1\&iterations=10"`)
}
