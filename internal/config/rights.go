package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"xmlcreator/internal/rights"
)

// ErrEmptyRegistry means the rights file names no rights at all.
var ErrEmptyRegistry = errors.New("rights registry is empty")

type rightsFile struct {
	Rights any `toml:"rights" yaml:"rights"`
}

// LoadRights reads the rights registry. The rights key may hold a list of
// names or a mapping whose keys are the names.
func LoadRights(path string) (rights.Registry, error) {
	resolved, err := resolveExisting(path)
	if err != nil {
		return rights.Registry{}, err
	}
	var file rightsFile
	if err := decodeFile(resolved, &file); err != nil {
		return rights.Registry{}, err
	}

	names, err := rightNames(file.Rights)
	if err != nil {
		return rights.Registry{}, fmt.Errorf("%s: %w", resolved, err)
	}
	registry := rights.NewRegistry(names...)
	if registry.Len() == 0 {
		return rights.Registry{}, fmt.Errorf("%s: %w", resolved, ErrEmptyRegistry)
	}
	return registry, nil
}

func rightNames(raw any) ([]string, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		names := make([]string, 0, len(value))
		for i, item := range value {
			name, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("rights[%d]: expected a string, got %T", i, item)
			}
			names = append(names, name)
		}
		return names, nil
	case map[string]any:
		names := make([]string, 0, len(value))
		for key := range value {
			names = append(names, key)
		}
		sort.Strings(names)
		return names, nil
	case string:
		return strings.Split(value, ","), nil
	default:
		return nil, fmt.Errorf("rights: unsupported value of type %T", raw)
	}
}
