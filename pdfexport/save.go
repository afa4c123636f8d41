package pdfexport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Saver delivers a finished document, e.g. to disk or as an HTTP download.
type Saver interface {
	Save(filename string, data []byte) error
}

// ErrKeptExisting is returned when Overwrite declines to replace a file.
var ErrKeptExisting = errors.New("kept the existing file")

// DirSaver writes documents into Dir, creating it if needed. Overwrite is
// asked before an existing file is replaced; nil replaces without asking.
type DirSaver struct {
	Dir       string
	Overwrite func(path string) (bool, error)

	last string
}

func (s *DirSaver) Save(filename string, data []byte) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}

	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	path := filepath.Join(dir, filename)
	if s.Overwrite != nil {
		_, err = os.Stat(path)
		if err == nil {
			var ok bool
			ok, err = s.Overwrite(path)
			if err != nil {
				return fmt.Errorf("Overwrite: %w", err)
			}
			if !ok {
				return ErrKeptExisting
			}
		}
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	s.last = path
	return nil
}

// Last is the path of the most recently saved document.
func (s *DirSaver) Last() string {
	return s.last
}
