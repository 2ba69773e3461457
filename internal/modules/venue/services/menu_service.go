package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// ErrCategoryInUse is returned when deleting a category menu items point at.
var ErrCategoryInUse = errors.New("category is used by menu items")

var categoryKeyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// MenuItemInput is the admin form for a menu button.
type MenuItemInput struct {
	AdminText       string `json:"admin_text" form:"admin_text"`
	DisplayText     string `json:"display_text" form:"display_text"`
	Question        string `json:"question" form:"question"`
	Category        string `json:"category" form:"category"`
	PriceInfo       string `json:"price_info" form:"price_info"`
	SuggestionTopic string `json:"suggestion_topic" form:"suggestion_topic"`
}

// MenuService manages chat buttons and their categories.
type MenuService struct {
	menu       repositories.MenuRepo
	categories repositories.CategoryRepo
}

func NewMenuService(menu repositories.MenuRepo, categories repositories.CategoryRepo) *MenuService {
	return &MenuService{menu: menu, categories: categories}
}

func (s *MenuService) List() ([]models.MenuItem, error) {
	return s.menu.List()
}

func (s *MenuService) ByCategory(category string) ([]models.MenuItem, error) {
	items, err := s.menu.List()
	if err != nil {
		return nil, err
	}
	out := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *MenuService) Display() ([]models.MenuDisplayItem, error) {
	items, err := s.menu.List()
	if err != nil {
		return nil, err
	}
	out := make([]models.MenuDisplayItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.Display())
	}
	return out, nil
}

func (s *MenuService) toItem(in MenuItemInput) (models.MenuItem, error) {
	item := models.MenuItem{
		AdminText:       strings.TrimSpace(in.AdminText),
		DisplayText:     strings.TrimSpace(in.DisplayText),
		Question:        utils.NormalizeQuestion(in.Question),
		Category:        strings.TrimSpace(in.Category),
		PriceInfo:       strings.TrimSpace(in.PriceInfo),
		SuggestionTopic: strings.ToLower(strings.TrimSpace(in.SuggestionTopic)),
	}
	if item.AdminText == "" || item.DisplayText == "" || item.Question == "" {
		return item, fmt.Errorf("%w: admin_text, display_text and question are required", repositories.ErrInvalid)
	}
	if item.Category == "" {
		item.Category = "attractions"
	}
	if item.SuggestionTopic == "" {
		item.SuggestionTopic = models.DefaultTopic
	}
	if _, ok := s.categories.Name(item.Category); !ok {
		return item, fmt.Errorf("%w: unknown category %q", repositories.ErrInvalid, item.Category)
	}
	return item, nil
}

func (s *MenuService) Add(admin string, in MenuItemInput) (models.MenuItem, error) {
	item, err := s.toItem(in)
	if err != nil {
		return item, err
	}
	if err := s.menu.Add(item); err != nil {
		return item, err
	}
	audit(admin, "menu.add", map[string]interface{}{"admin_text": item.AdminText, "question": item.Question, "category": item.Category})
	return item, nil
}

func (s *MenuService) Update(admin string, index int, in MenuItemInput) (models.MenuItem, error) {
	item, err := s.toItem(in)
	if err != nil {
		return item, err
	}
	if err := s.menu.Update(index, item); err != nil {
		return item, err
	}
	audit(admin, "menu.edit", map[string]interface{}{"index": index, "admin_text": item.AdminText, "question": item.Question})
	return item, nil
}

func (s *MenuService) Delete(admin string, index int) (models.MenuItem, error) {
	removed, err := s.menu.Delete(index)
	if err != nil {
		return removed, err
	}
	audit(admin, "menu.delete", map[string]interface{}{"index": index, "admin_text": removed.AdminText})
	return removed, nil
}

// ClearCache drops the cached menu and reloads it from disk.
func (s *MenuService) ClearCache() ([]models.MenuItem, error) {
	s.menu.InvalidateCache()
	return s.menu.List()
}

func (s *MenuService) Categories() models.Categories {
	return s.categories.List()
}

func (s *MenuService) AddCategory(admin, key, name string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	name = strings.TrimSpace(name)
	if key == "" || name == "" {
		return fmt.Errorf("%w: key and name are required", repositories.ErrInvalid)
	}
	if !categoryKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: key may contain only a-z, 0-9 and _", repositories.ErrInvalid)
	}
	if err := s.categories.Add(key, name); err != nil {
		return err
	}
	audit(admin, "category.add", map[string]interface{}{"key": key, "name": name})
	return nil
}

// DeleteCategory removes a custom category no menu item refers to.
func (s *MenuService) DeleteCategory(admin, key string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if models.IsSystemCategory(key) {
		return repositories.ErrSystemCategory
	}
	if _, ok := s.categories.Name(key); !ok {
		return fmt.Errorf("category %q %w", key, repositories.ErrNotFound)
	}
	used, err := s.menu.UsesCategory(key)
	if err != nil {
		return err
	}
	if used {
		return ErrCategoryInUse
	}
	if err := s.categories.Delete(key); err != nil {
		return err
	}
	audit(admin, "category.delete", map[string]interface{}{"key": key})
	return nil
}
