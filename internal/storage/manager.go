package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/job-intake/backend/internal/models"
)

// ErrNotFound is returned when a staged file id is unknown.
var ErrNotFound = errors.New("staged file not found")

// Store defines the interface for transient file staging.
type Store interface {
	Save(name string, r io.Reader) (*models.StagedFile, error)
	Remove(id string) error
	Dir() string
	CleanupOlderThan(maxAge time.Duration) (int, error)
}

// LocalStore implements Store using the local filesystem.
type LocalStore struct {
	mu        sync.RWMutex
	uploadDir string
	files     map[string]*models.StagedFile
	now       func() time.Time
}

// NewLocalStore creates a new LocalStore.
func NewLocalStore(uploadDir string) (*LocalStore, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &LocalStore{
		uploadDir: uploadDir,
		files:     make(map[string]*models.StagedFile),
		now:       time.Now,
	}, nil
}

// Dir returns the staging directory.
func (s *LocalStore) Dir() string {
	return s.uploadDir
}

// Save copies r into a new staged file. A failed copy leaves nothing behind,
// and the reader's error is returned unwrapped so callers can match on it.
func (s *LocalStore) Save(name string, r io.Reader) (*models.StagedFile, error) {
	id := uuid.New().String()
	path := filepath.Join(s.uploadDir, id)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	info := &models.StagedFile{
		ID:       id,
		Name:     name,
		Path:     path,
		Size:     size,
		StagedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[id] = info

	return info, nil
}

// Get retrieves staged file metadata by ID.
func (s *LocalStore) Get(id string) (*models.StagedFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.files[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return info, nil
}

// Remove deletes a staged file.
func (s *LocalStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.files[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := os.Remove(info.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}

	delete(s.files, id)
	return nil
}

// Count returns the number of tracked staged files.
func (s *LocalStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// CleanupOlderThan removes staged files older than maxAge and returns how many
// were removed.
func (s *LocalStore) CleanupOlderThan(maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	removed := 0
	var errs []error
	for id, info := range s.files {
		if !info.StagedAt.Before(cutoff) {
			continue
		}
		if err := os.Remove(info.Path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("deleting %s: %w", id, err))
			continue
		}
		delete(s.files, id)
		removed++
	}

	return removed, errors.Join(errs...)
}
