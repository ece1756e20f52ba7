// Package persona loads instruction templates for the assistant from
// TOML files. A persona file overrides the configured system
// instructions for every request in a conversation.
package persona

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Persona represents the structure of a TOML persona file.
type Persona struct {
	Instructions string `toml:"instructions"`
}

// LoadFile loads a persona file and returns its contents.
func LoadFile(filePath string) (*Persona, error) {
	var p Persona
	if _, err := toml.DecodeFile(filePath, &p); err != nil {
		return nil, fmt.Errorf("error decoding persona file: %v", err)
	}
	if strings.TrimSpace(p.Instructions) == "" {
		return nil, fmt.Errorf("persona file %s has no instructions", filePath)
	}
	return &p, nil
}

// Load resolves a persona by name across the configured directories and
// loads it. Later directories take precedence over earlier ones, so the
// search runs back to front.
func Load(name string, dirs []string) (*Persona, error) {
	if name == "" {
		return nil, fmt.Errorf("persona name must not be empty")
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		path := filepath.Join(dirs[i], name+".toml")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}

	return nil, fmt.Errorf("persona not found: %s (searched %d directories)", name, len(dirs))
}
