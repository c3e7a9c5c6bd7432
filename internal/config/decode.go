package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// decodeFile fills v from path, choosing TOML or YAML by extension. Anything
// that is not .toml is read as YAML.
func decodeFile(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewDecoder(file).Decode(v); err != nil {
			return fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
		}
	default:
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("parse config %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}
