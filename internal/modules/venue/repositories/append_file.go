package repositories

import (
	"sync"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
)

// appendFile is a JSON array file that only grows. It is read once and then
// served from memory; every append rewrites the whole file.
type appendFile[T any] struct {
	mu     sync.Mutex
	files  *filestore.Files
	path   string
	backup bool
	items  []T
	loaded bool
}

func newAppendFile[T any](files *filestore.Files, path string, backup bool) *appendFile[T] {
	return &appendFile[T]{files: files, path: path, backup: backup}
}

// load reads the file once. Caller holds mu.
func (a *appendFile[T]) load() error {
	if a.loaded {
		return nil
	}
	var items []T
	if _, err := a.files.ReadJSON(a.path, &items); err != nil {
		return err
	}
	a.items = items
	a.loaded = true
	return nil
}

// append adds item and returns the new length.
func (a *appendFile[T]) append(item T) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.load(); err != nil {
		return 0, err
	}

	next := make([]T, 0, len(a.items)+1)
	next = append(next, a.items...)
	next = append(next, item)

	var err error
	if a.backup {
		_, err = a.files.WriteJSON(a.path, next)
	} else {
		err = a.files.WriteJSONNoBackup(a.path, next)
	}
	if err != nil {
		return 0, err
	}
	a.items = next
	return len(next), nil
}

func (a *appendFile[T]) list() ([]T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.load(); err != nil {
		return nil, err
	}
	return append([]T(nil), a.items...), nil
}
