// mock_storage.go - In-memory staging store for testing
package testutil

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/job-intake/backend/internal/models"
	"github.com/job-intake/backend/internal/storage"
)

// MockStorage implements storage.Store in memory.
type MockStorage struct {
	mu       sync.RWMutex
	files    map[string]*models.StagedFile
	fileData map[string][]byte
	removed  []string
	nextID   int

	// SaveErr, when set, is returned by Save after the reader is drained.
	SaveErr error
}

// NewMockStorage creates a new empty mock storage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		files:    make(map[string]*models.StagedFile),
		fileData: make(map[string][]byte),
	}
}

func (m *MockStorage) Save(name string, r io.Reader) (*models.StagedFile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if m.SaveErr != nil {
		return nil, m.SaveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	id := fmt.Sprintf("staged-%d", m.nextID)
	file := &models.StagedFile{
		ID:       id,
		Name:     name,
		Path:     m.Dir() + "/" + id,
		Size:     int64(len(data)),
		StagedAt: time.Now(),
	}

	m.files[id] = file
	m.fileData[id] = data
	return file, nil
}

func (m *MockStorage) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.files[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.files, id)
	delete(m.fileData, id)
	m.removed = append(m.removed, id)
	return nil
}

func (m *MockStorage) Dir() string {
	return "/mock/uploads"
}

func (m *MockStorage) CleanupOlderThan(maxAge time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, f := range m.files {
		if f.StagedAt.Before(cutoff) {
			delete(m.files, id)
			delete(m.fileData, id)
			removed++
		}
	}
	return removed, nil
}

// Ensure MockStorage implements storage.Store
var _ storage.Store = (*MockStorage)(nil)

// Test Helper Methods

// GetFileData returns the staged content.
func (m *MockStorage) GetFileData(id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.fileData[id]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

// GetFileCount returns the number of currently staged files.
func (m *MockStorage) GetFileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// Removed returns the ids passed to Remove, in order.
func (m *MockStorage) Removed() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.removed...)
}
