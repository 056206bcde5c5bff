// Package repository provides the sinks that receive output lines.
package repository

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	models "github.com/Schera-ole/jmx-telegraf/internal/model"
)

// Repository receives the lines of one run, in emission order.
type Repository interface {
	// WriteLine appends a single line.
	WriteLine(line models.OutputLine) error

	// Commit publishes the lines written so far as the output of the run.
	Commit() error

	// Close releases the sink. Lines not committed are discarded.
	Close() error
}

// FileStorage stages lines next to the output file and replaces the file
// with them on Commit, so readers never see a partial run.
type FileStorage struct {
	file *renameio.PendingFile
	w    *bufio.Writer
}

// NewFileStorage prepares a replacement for fname. fname itself is left
// untouched until Commit.
func NewFileStorage(fname string) (*FileStorage, error) {
	dir := filepath.Dir(fname)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}

	file, err := renameio.NewPendingFile(fname, renameio.WithPermissions(0644))
	if err != nil {
		return nil, fmt.Errorf("error creating file: %w", err)
	}
	return &FileStorage{file: file, w: bufio.NewWriter(file)}, nil
}

func (fs *FileStorage) WriteLine(line models.OutputLine) error {
	if _, err := fs.w.WriteString(line.String() + "\n"); err != nil {
		return fmt.Errorf("error writing output line: %w", err)
	}
	return nil
}

func (fs *FileStorage) Commit() error {
	if err := fs.w.Flush(); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	if err := fs.file.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("error replacing output file: %w", err)
	}
	return nil
}

// Close removes the staged file unless it was committed.
func (fs *FileStorage) Close() error {
	return fs.file.Cleanup()
}
