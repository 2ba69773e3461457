package repositories

import (
	"fmt"
	"sync"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// MenuRepo is the ordered list of chat buttons. The list is cached after the
// first read; InvalidateCache forces the next read to go to disk, which is
// how hand edits of the file are picked up.
type MenuRepo interface {
	List() ([]models.MenuItem, error)
	Get(index int) (models.MenuItem, error)
	FindByQuestion(question string) (models.MenuItem, bool)
	UsesCategory(key string) (bool, error)
	Add(item models.MenuItem) error
	Update(index int, item models.MenuItem) error
	Delete(index int) (models.MenuItem, error)
	InvalidateCache()
}

type menuRepo struct {
	mu    sync.Mutex
	files *filestore.Files
	path  string
	cache []models.MenuItem
}

func NewMenuRepo(files *filestore.Files, path string) MenuRepo {
	return &menuRepo{files: files, path: path}
}

// load fills the cache. Caller holds mu.
func (r *menuRepo) load() ([]models.MenuItem, error) {
	if r.cache != nil {
		return r.cache, nil
	}

	var items []models.MenuItem
	found, err := r.files.ReadJSON(r.path, &items)
	if err != nil {
		return nil, err
	}
	if !found {
		items = DefaultMenu()
		if err := r.save(items); err != nil {
			return nil, err
		}
		utils.LogInfo("✅ Created default menu", map[string]interface{}{"path": r.path})
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	r.cache = items
	return r.cache, nil
}

func (r *menuRepo) save(items []models.MenuItem) error {
	if _, err := r.files.WriteJSON(r.path, items); err != nil {
		return fmt.Errorf("failed to save menu: %w", err)
	}
	return nil
}

func (r *menuRepo) List() ([]models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return nil, err
	}
	return append([]models.MenuItem(nil), items...), nil
}

func (r *menuRepo) Get(index int) (models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return models.MenuItem{}, err
	}
	if index < 0 || index >= len(items) {
		return models.MenuItem{}, fmt.Errorf("menu item %d %w", index, ErrNotFound)
	}
	return items[index], nil
}

func (r *menuRepo) FindByQuestion(question string) (models.MenuItem, bool) {
	question = utils.NormalizeQuestion(question)

	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		utils.LogError("failed to load menu", err, nil)
		return models.MenuItem{}, false
	}
	for _, item := range items {
		if item.Question == question {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

func (r *menuRepo) UsesCategory(key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.Category == key {
			return true, nil
		}
	}
	return false, nil
}

// checkUnique rejects an admin label or trigger phrase already used by an
// item other than skip.
func checkUnique(items []models.MenuItem, item models.MenuItem, skip int) error {
	for i, existing := range items {
		if i == skip {
			continue
		}
		if existing.AdminText == item.AdminText {
			return fmt.Errorf("menu item with label %q %w", item.AdminText, ErrDuplicate)
		}
		if existing.Question == item.Question {
			return fmt.Errorf("menu item with question %q %w", item.Question, ErrDuplicate)
		}
	}
	return nil
}

func (r *menuRepo) Add(item models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return err
	}
	if err := checkUnique(items, item, -1); err != nil {
		return err
	}

	next := make([]models.MenuItem, 0, len(items)+1)
	next = append(next, items...)
	next = append(next, item)
	if err := r.save(next); err != nil {
		return err
	}
	r.cache = next
	return nil
}

func (r *menuRepo) Update(index int, item models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return fmt.Errorf("menu item %d %w", index, ErrNotFound)
	}
	if err := checkUnique(items, item, index); err != nil {
		return err
	}

	next := append([]models.MenuItem(nil), items...)
	next[index] = item
	if err := r.save(next); err != nil {
		return err
	}
	r.cache = next
	return nil
}

// Delete removes the item at index; later items shift down by one.
func (r *menuRepo) Delete(index int) (models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load()
	if err != nil {
		return models.MenuItem{}, err
	}
	if index < 0 || index >= len(items) {
		return models.MenuItem{}, fmt.Errorf("menu item %d %w", index, ErrNotFound)
	}

	removed := items[index]
	next := make([]models.MenuItem, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)
	if err := r.save(next); err != nil {
		return models.MenuItem{}, err
	}
	r.cache = next
	return removed, nil
}

func (r *menuRepo) InvalidateCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = nil
}
