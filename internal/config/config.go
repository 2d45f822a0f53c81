package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the manifest looked up in a project directory.
const FileName = "lumen.yml"

type Manifest struct {
	Name    string  `yaml:"name"`
	Entry   string  `yaml:"entry"`
	Options Options `yaml:"options,omitempty"`

	// Path is the absolute manifest location; empty for Default().
	Path string `yaml:"-"`
}

type Options struct {
	HaltOnSyntaxError bool `yaml:"halt_on_syntax_error,omitempty"`
	PrintAST          bool `yaml:"print_ast,omitempty"`
}

func Default() *Manifest {
	return &Manifest{Name: "main", Entry: "main.lum"}
}

func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Manifest{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", abs, err)
	}
	m.Path = abs
	m.normalize()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", abs, err)
	}
	return m, nil
}

// Find loads lumen.yml from dir. ok is false when there is no manifest.
func Find(dir string) (m *Manifest, ok bool, err error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	m, err = LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func (m *Manifest) Validate() error {
	if m.Name == "" {
		return errors.New("missing name")
	}
	if m.Entry == "" {
		return errors.New("missing entry")
	}
	if filepath.Ext(m.Entry) != ".lum" {
		return fmt.Errorf("entry %q must be a .lum file", m.Entry)
	}
	return nil
}

// EntryPath resolves Entry against the manifest directory.
func (m *Manifest) EntryPath() string {
	if m.Path == "" || filepath.IsAbs(m.Entry) {
		return m.Entry
	}
	return filepath.Join(filepath.Dir(m.Path), m.Entry)
}

// Write serialises the manifest to path.
func (m *Manifest) Write(path string) error {
	m.normalize()
	if err := m.Validate(); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("manifest: marshal %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("manifest: encoder close: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}

func (m *Manifest) normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Entry = strings.TrimSpace(m.Entry)
}
