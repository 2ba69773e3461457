package repositories

import (
	"fmt"
	"sync"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// CategoryRepo stores user-defined menu categories. The file is a flat
// key → name object that also lists the system categories.
type CategoryRepo interface {
	List() models.Categories
	Name(key string) (string, bool)
	Add(key, name string) error
	Delete(key string) error
}

type categoryRepo struct {
	mu     sync.RWMutex
	files  *filestore.Files
	path   string
	custom *filestore.OrderedMap[string]
}

func NewCategoryRepo(files *filestore.Files, path string) (CategoryRepo, error) {
	r := &categoryRepo{files: files, path: path, custom: filestore.NewOrderedMap[string]()}

	flat := filestore.NewOrderedMap[string]()
	found, err := files.ReadJSON(path, flat)
	if err != nil {
		return nil, err
	}
	if !found {
		if err := r.save(r.custom); err != nil {
			return nil, err
		}
		utils.LogInfo("✅ Created default menu categories", map[string]interface{}{"path": path})
		return r, nil
	}

	flat.Each(func(key, name string) bool {
		if !models.IsSystemCategory(key) {
			r.custom.Set(key, name)
		}
		return true
	})
	return r, nil
}

func (r *categoryRepo) save(custom *filestore.OrderedMap[string]) error {
	flat := filestore.NewOrderedMap[string]()
	for _, c := range models.SystemCategories {
		flat.Set(c.Key, c.Name)
	}
	custom.Each(func(key, name string) bool {
		flat.Set(key, name)
		return true
	})
	if _, err := r.files.WriteJSON(r.path, flat); err != nil {
		return fmt.Errorf("failed to save menu categories: %w", err)
	}
	return nil
}

func (r *categoryRepo) List() models.Categories {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := models.Categories{
		System: append([]models.Category(nil), models.SystemCategories...),
		Custom: make([]models.Category, 0, r.custom.Len()),
	}
	r.custom.Each(func(key, name string) bool {
		out.Custom = append(out.Custom, models.Category{Key: key, Name: name})
		return true
	})
	return out
}

func (r *categoryRepo) Name(key string) (string, bool) {
	for _, c := range models.SystemCategories {
		if c.Key == key {
			return c.Name, true
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.custom.Get(key)
}

func (r *categoryRepo) Add(key, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if models.IsSystemCategory(key) || r.custom.Has(key) {
		return fmt.Errorf("category %q %w", key, ErrDuplicate)
	}
	next := r.custom.Clone()
	next.Set(key, name)
	if err := r.save(next); err != nil {
		return err
	}
	r.custom = next
	return nil
}

// Delete removes a custom category. Callers check menu references first.
func (r *categoryRepo) Delete(key string) error {
	if models.IsSystemCategory(key) {
		return ErrSystemCategory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.custom.Has(key) {
		return fmt.Errorf("category %q %w", key, ErrNotFound)
	}
	next := r.custom.Clone()
	next.Delete(key)
	if err := r.save(next); err != nil {
		return err
	}
	r.custom = next
	return nil
}
