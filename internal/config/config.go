package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the directory name used under the XDG config home.
	AppName = "pagecycler"

	// LocalConfigFile is looked up in the working directory.
	LocalConfigFile = ".pagecycler.yaml"

	// XDGConfigFile is looked up in XDGConfigDir.
	XDGConfigFile = "config.yaml"
)

// ErrConfigNotFound is returned when an explicitly requested file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File mirrors the command line options that may be defaulted from disk.
// Pointer fields distinguish "absent" from zero values.
type File struct {
	Adb              *string `yaml:"adb"`
	AdbOptions       *string `yaml:"adb_options"`
	ResultsDirectory *string `yaml:"results_directory"`
	TimeOutMS        *string `yaml:"time_out_ms"`
	DrawTime         *bool   `yaml:"drawtime"`
	SaveImage        *string `yaml:"save_image"`
	Verbose          *bool   `yaml:"verbose"`
	Format           *string `yaml:"format"`
}

// XDGConfigDir returns the pagecycler directory under the XDG config home.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Load parses the YAML file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// Find returns the config file to use, or "" when there is none. An explicit
// path is returned as is so that Load can report it missing.
func Find(explicit string) string {
	if explicit != "" {
		return explicit
	}

	candidates := []string{LocalConfigFile}
	if dir := XDGConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, XDGConfigFile))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.Mode().IsRegular() {
			return c
		}
	}
	return ""
}

// Resolve finds and loads the config file. It returns an empty File when no
// file is found and none was requested.
func Resolve(explicit string) (*File, string, error) {
	path := Find(explicit)
	if path == "" {
		return &File{}, "", nil
	}
	f, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return f, path, nil
}
