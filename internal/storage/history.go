package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// State is the persisted editor state.
type State struct {
	LastDir string   `yaml:"last_dir,omitempty"`
	Recent  []string `yaml:"recent,omitempty"`
}

// History remembers the most recently opened or saved files and the
// directory of the last one.
type History struct {
	fs    afero.Fs
	path  string
	limit int
	state State
}

// OpenHistory reads the state file at path. A missing file starts an
// empty history; a malformed one is an error.
func OpenHistory(fs afero.Fs, path string, limit int) (*History, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	h := &History{fs: fs, path: path, limit: max(1, limit)}
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return h, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	if err := yaml.Unmarshal(data, &h.state); err != nil {
		return nil, fmt.Errorf("parsing state %s: %w", path, err)
	}
	return h, nil
}

// Recent returns remembered files, most recent first.
func (h *History) Recent() []string { return slices.Clone(h.state.Recent) }

func (h *History) LastDir() string { return h.state.LastDir }

// Record moves path to the front of the recent list and persists the state.
func (h *History) Record(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	recent := slices.DeleteFunc(h.state.Recent, func(p string) bool { return p == abs })
	recent = append([]string{abs}, recent...)
	if len(recent) > h.limit {
		recent = recent[:h.limit]
	}
	h.state.Recent = recent
	h.state.LastDir = filepath.Dir(abs)
	return h.write()
}

func (h *History) write() error {
	data, err := yaml.Marshal(&h.state)
	if err != nil {
		return err
	}
	if err := h.fs.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	if err := afero.WriteFile(h.fs, h.path, data, 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
