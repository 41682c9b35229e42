// Package storage loads and saves documents and keeps the small editor
// state file. All file access goes through an afero.Fs so tests can run
// against an in-memory file system.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"

	"yate/internal/log"
)

// Store reads and writes document files.
type Store struct {
	fs afero.Fs
}

// New returns a Store on fs, or on the OS file system when fs is nil.
func New(fs afero.Fs) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs}
}

// Load reads path as lines with "\n" and "\r\n" terminators stripped.
// A missing file yields an error matching os.ErrNotExist.
func (s *Store) Load(path string) ([][]byte, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines [][]byte
	r := bufio.NewReader(f)
	for {
		line, rerr := r.ReadBytes('\n')
		if len(line) > 0 {
			for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
				line = line[:len(line)-1]
			}
			lines = append(lines, line)
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("reading %s: %w", path, rerr)
		}
	}
	log.Debug(log.CatStorage, "loaded", "path", path, "lines", len(lines))
	return lines, nil
}

// Save writes data to path, creating the file if needed and truncating or
// extending it to exactly len(data) bytes. It returns the bytes written.
func (s *Store) Save(path string, data []byte) (int, error) {
	f, err := s.fs.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return 0, err
	}
	if err := f.Truncate(int64(len(data))); err != nil {
		_ = f.Close()
		return 0, err
	}
	n, err := f.Write(data)
	if err == nil && n != len(data) {
		err = io.ErrShortWrite
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		log.ErrorErr(log.CatStorage, "save", err, "path", path)
		return n, err
	}
	return n, nil
}
