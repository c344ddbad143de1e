package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// Dir returns ~/.rosterpick.
func Dir() string {
	return filepath.Join(home(), ".rosterpick")
}

// ConfigFile returns ~/.rosterpick/config.yaml.
func ConfigFile() string {
	return filepath.Join(Dir(), "config.yaml")
}

// SelectionsFile returns the default store location for a backend:
// ~/.rosterpick/selections.db for sqlite, selections.yaml otherwise.
func SelectionsFile(backend string) string {
	if backend == "sqlite" {
		return filepath.Join(Dir(), "selections.db")
	}
	return filepath.Join(Dir(), "selections.yaml")
}

// CatalogFile returns ~/.rosterpick/catalog.jsonc.
func CatalogFile() string {
	return filepath.Join(Dir(), "catalog.jsonc")
}
