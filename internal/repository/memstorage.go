package repository

import (
	"sync"

	models "github.com/Schera-ole/jmx-telegraf/internal/model"
)

// MemStorage implements the Repository interface using in-memory storage.
type MemStorage struct {
	mu     sync.RWMutex
	lines     []models.OutputLine
	committed bool
	closed    bool
}

func NewMemStorage() *MemStorage {
	return &MemStorage{}
}

// WriteLine appends line to the stored lines.
func (ms *MemStorage) WriteLine(line models.OutputLine) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.lines = append(ms.lines, line)
	return nil
}

// Lines returns a copy of the stored lines.
func (ms *MemStorage) Lines() []models.OutputLine {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return append([]models.OutputLine(nil), ms.lines...)
}

// Strings returns the stored lines rendered as they would be written to a file.
func (ms *MemStorage) Strings() []string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	out := make([]string, 0, len(ms.lines))
	for _, l := range ms.lines {
		out = append(out, l.String())
	}
	return out
}

// Commit marks the stored lines as published.
func (ms *MemStorage) Commit() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.committed = true
	return nil
}

// Committed reports whether Commit was called.
func (ms *MemStorage) Committed() bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.committed
}

// Closed reports whether Close was called.
func (ms *MemStorage) Closed() bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.closed
}

func (ms *MemStorage) Close() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.closed = true
	return nil
}
