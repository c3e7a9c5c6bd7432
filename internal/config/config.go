package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"xmlcreator/internal/metadata"
)

// ErrConfigNotFound is returned when a configuration file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// Settings holds run-wide knobs.
type Settings struct {
	RightsFile    string `toml:"rights_file" yaml:"rights_file"`
	OutputDir     string `toml:"output_dir" yaml:"output_dir"`
	LedgerEnabled bool   `toml:"ledger_enabled" yaml:"ledger_enabled"`
	LedgerPath    string `toml:"ledger_path" yaml:"ledger_path"`
	LogDir        string `toml:"log_dir" yaml:"log_dir"`
	LogLevel      string `toml:"log_level" yaml:"log_level"`
	LogFormat     string `toml:"log_format" yaml:"log_format"`
	Timezone      string `toml:"timezone" yaml:"timezone"`
	NtfyTopic     string `toml:"ntfy_topic" yaml:"ntfy_topic"`
	NtfyTimeout   int    `toml:"ntfy_timeout" yaml:"ntfy_timeout"`
}

// Spreadsheet locates the exported sheet. Name is a CSV or XLSX path.
type Spreadsheet struct {
	Name string `toml:"name" yaml:"name"`
}

// Worksheet selects a sheet inside a workbook export.
type Worksheet struct {
	Name string `toml:"name" yaml:"name"`
}

// Cells binds each metadata field to its header text, plus the done marker.
type Cells struct {
	Title             string `toml:"title" yaml:"title"`
	Description       string `toml:"description" yaml:"description"`
	Filename          string `toml:"filename" yaml:"filename"`
	Keywords          string `toml:"keywords" yaml:"keywords"`
	Rights            string `toml:"rights" yaml:"rights"`
	RenderStatus      string `toml:"renderStatus" yaml:"renderStatus"`
	RenderStatusValue string `toml:"renderStatusValue" yaml:"renderStatusValue"`
}

// Config is the spreadsheet configuration.
type Config struct {
	Settings    Settings    `toml:"settings" yaml:"settings"`
	Spreadsheet Spreadsheet `toml:"spreadsheet" yaml:"spreadsheet"`
	Worksheet   Worksheet   `toml:"worksheet" yaml:"worksheet"`
	Cells       Cells       `toml:"cells" yaml:"cells"`

	// Path is the absolute location the config was read from.
	Path string `toml:"-" yaml:"-"`
}

// Load reads, normalizes, and validates the spreadsheet configuration at path
// (DefaultConfigFile when empty).
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigFile
	}
	resolved, err := resolveExisting(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := decodeFile(resolved, &cfg); err != nil {
		return nil, err
	}
	cfg.Path = resolved

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Bindings converts the cell section into header bindings for the extractor.
func (c *Config) Bindings() metadata.Bindings {
	return metadata.Bindings{
		Headers: map[metadata.Field]string{
			metadata.FieldTitle:        c.Cells.Title,
			metadata.FieldDescription:  c.Cells.Description,
			metadata.FieldFilename:     c.Cells.Filename,
			metadata.FieldKeywords:     c.Cells.Keywords,
			metadata.FieldRights:       c.Cells.Rights,
			metadata.FieldRenderStatus: c.Cells.RenderStatus,
		},
		DoneMarker: c.Cells.RenderStatusValue,
	}
}

// EnsureDirectories creates the output and log directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Settings.OutputDir, c.Settings.LogDir}
	if c.Settings.LedgerEnabled && c.Settings.LedgerPath != "" {
		dirs = append(dirs, filepath.Dir(c.Settings.LedgerPath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) baseDir() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

func resolveExisting(path string) (string, error) {
	expanded, err := expandPath(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", expanded, ErrConfigNotFound)
		}
		return "", fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("config %s is a directory", expanded)
	}
	return expanded, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// resolveRelative expands pathValue, anchoring relative paths at base.
func resolveRelative(base, pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", nil
	}
	if base != "" && !strings.HasPrefix(pathValue, "~") && !filepath.IsAbs(pathValue) {
		pathValue = filepath.Join(base, pathValue)
	}
	return expandPath(pathValue)
}
