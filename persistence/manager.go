package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manager saves and loads snapshot documents under a base directory
type Manager struct {
	basePath string
}

// NewManager creates a manager with the given base directory
func NewManager(basePath string) *Manager {
	return &Manager{basePath: basePath}
}

// FilePath returns the path for a named document
func (m *Manager) FilePath(name string) string {
	return filepath.Join(m.basePath, name+".toml")
}

// Exists checks if a document exists
func (m *Manager) Exists(name string) bool {
	_, err := os.Stat(m.FilePath(name))
	return err == nil
}

// Save encodes v as TOML, creating the base directory if needed
func (m *Manager) Save(name string, v any) error {
	if err := os.MkdirAll(m.basePath, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	return os.WriteFile(m.FilePath(name), data, 0644)
}

// Load decodes a named document into v
func (m *Manager) Load(name string, v any) error {
	data, err := os.ReadFile(m.FilePath(name))
	if err != nil {
		return err
	}

	if err := toml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// SaveTable writes a value table snapshot
func (m *Manager) SaveTable(name string, dto TableDTO) error {
	return m.Save(name, dto)
}

// LoadTable reads a value table snapshot
func (m *Manager) LoadTable(name string) (TableDTO, error) {
	var dto TableDTO
	err := m.Load(name, &dto)
	return dto, err
}

// SaveSwarm writes a swarm snapshot
func (m *Manager) SaveSwarm(name string, dto SwarmDTO) error {
	return m.Save(name, dto)
}

// LoadSwarm reads a swarm snapshot
func (m *Manager) LoadSwarm(name string) (SwarmDTO, error) {
	var dto SwarmDTO
	err := m.Load(name, &dto)
	return dto, err
}
