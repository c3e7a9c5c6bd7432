package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"xmlcreator/internal/config"
)

func TestLoadRightsList(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "rights.yml"), "rights:\n  - news\n  - \" sports \"\n  - \"\"\n")
	registry, err := config.LoadRights(path)
	if err != nil {
		t.Fatalf("LoadRights: %v", err)
	}
	if registry.Len() != 2 || !registry.Contains("news") || !registry.Contains("sports") {
		t.Fatalf("unexpected registry: %v", registry.Names())
	}
}

func TestLoadRightsMapping(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "rights.yml"), "rights:\n  news: {}\n  weather: true\n")
	registry, err := config.LoadRights(path)
	if err != nil {
		t.Fatalf("LoadRights: %v", err)
	}
	names := registry.Names()
	if len(names) != 2 || names[0] != "news" || names[1] != "weather" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestLoadRightsTOML(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "rights.toml"), "rights = [\"news\"]\n")
	registry, err := config.LoadRights(path)
	if err != nil {
		t.Fatalf("LoadRights: %v", err)
	}
	if !registry.Contains("news") {
		t.Fatalf("unexpected registry: %v", registry.Names())
	}
}

func TestLoadRightsEmpty(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "rights.yml"), "rights: []\n")
	if _, err := config.LoadRights(path); !errors.Is(err, config.ErrEmptyRegistry) {
		t.Fatalf("expected ErrEmptyRegistry, got %v", err)
	}
}

func TestLoadRightsRejectsNonStrings(t *testing.T) {
	path := writeFile(t, filepath.Join(t.TempDir(), "rights.yml"), "rights:\n  - [nested]\n")
	if _, err := config.LoadRights(path); err == nil {
		t.Fatal("expected error for nested list")
	}
}
