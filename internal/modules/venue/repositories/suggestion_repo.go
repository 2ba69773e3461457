package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// SuggestionRepo maps topics to their follow-up prompts. Topics keep the
// order they were created in; that order decides which topic wins when two
// topics share a trigger phrase.
type SuggestionRepo interface {
	Topics() []string
	All() *filestore.OrderedMap[[]models.SuggestionItem]
	Items(topic string) ([]models.SuggestionItem, bool)
	FindByQuestion(question string) (string, models.SuggestionItem, bool)
	Add(topic string, item models.SuggestionItem) error
	Delete(topic, text string) error
}

type suggestionRepo struct {
	mu    sync.RWMutex
	files *filestore.Files
	path  string
	data  *filestore.OrderedMap[[]models.SuggestionItem]
}

func NewSuggestionRepo(files *filestore.Files, path string) (SuggestionRepo, error) {
	r := &suggestionRepo{files: files, path: path}

	loaded := filestore.NewOrderedMap[[]models.SuggestionItem]()
	found, err := files.ReadJSON(path, loaded)
	if err != nil {
		return nil, err
	}
	if found {
		r.data = normalizeTopics(loaded)
		return r, nil
	}

	defaults := DefaultSuggestions()
	if err := r.save(defaults); err != nil {
		return nil, err
	}
	r.data = defaults
	utils.LogInfo("✅ Created default suggestions", map[string]interface{}{"path": path})
	return r, nil
}

// NormalizeTopic is the canonical topic key: trimmed and lower-cased.
func NormalizeTopic(topic string) string {
	return strings.ToLower(strings.TrimSpace(topic))
}

// normalizeTopics rekeys a loaded file. Keys that collide after
// normalization are merged in file order.
func normalizeTopics(in *filestore.OrderedMap[[]models.SuggestionItem]) *filestore.OrderedMap[[]models.SuggestionItem] {
	out := filestore.NewOrderedMap[[]models.SuggestionItem]()
	in.Each(func(topic string, items []models.SuggestionItem) bool {
		key := NormalizeTopic(topic)
		prev, _ := out.Get(key)
		out.Set(key, append(append([]models.SuggestionItem(nil), prev...), items...))
		return true
	})
	return out
}

func (r *suggestionRepo) save(next *filestore.OrderedMap[[]models.SuggestionItem]) error {
	if _, err := r.files.WriteJSON(r.path, next); err != nil {
		return fmt.Errorf("failed to save suggestions: %w", err)
	}
	return nil
}

func (r *suggestionRepo) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data.Keys()
}

// All returns a deep copy.
func (r *suggestionRepo) All() *filestore.OrderedMap[[]models.SuggestionItem] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := filestore.NewOrderedMap[[]models.SuggestionItem]()
	r.data.Each(func(topic string, items []models.SuggestionItem) bool {
		out.Set(topic, append([]models.SuggestionItem(nil), items...))
		return true
	})
	return out
}

func (r *suggestionRepo) Items(topic string) ([]models.SuggestionItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items, ok := r.data.Get(NormalizeTopic(topic))
	if !ok {
		return nil, false
	}
	return append([]models.SuggestionItem(nil), items...), true
}

// FindByQuestion returns the first item whose trigger phrase equals the
// normalized question, scanning topics in order.
func (r *suggestionRepo) FindByQuestion(question string) (string, models.SuggestionItem, bool) {
	question = utils.NormalizeQuestion(question)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		topic string
		found models.SuggestionItem
		ok    bool
	)
	r.data.Each(func(t string, items []models.SuggestionItem) bool {
		for _, item := range items {
			if utils.NormalizeQuestion(item.Question) == question {
				topic, found, ok = t, item, true
				return false
			}
		}
		return true
	})
	return topic, found, ok
}

// Add appends item to topic, creating the topic when needed.
func (r *suggestionRepo) Add(topic string, item models.SuggestionItem) error {
	topic = NormalizeTopic(topic)

	r.mu.Lock()
	defer r.mu.Unlock()

	items, _ := r.data.Get(topic)
	for _, existing := range items {
		if existing.Text == item.Text {
			return fmt.Errorf("suggestion %q in topic %q %w", item.Text, topic, ErrDuplicate)
		}
	}

	next := r.data.Clone()
	updated := make([]models.SuggestionItem, 0, len(items)+1)
	updated = append(updated, items...)
	next.Set(topic, append(updated, item))
	if err := r.save(next); err != nil {
		return err
	}
	r.data = next
	return nil
}

// Delete removes the item labelled text. The topic stays even when empty.
func (r *suggestionRepo) Delete(topic, text string) error {
	topic = NormalizeTopic(topic)

	r.mu.Lock()
	defer r.mu.Unlock()

	items, ok := r.data.Get(topic)
	if !ok {
		return fmt.Errorf("topic %q %w", topic, ErrNotFound)
	}
	kept := make([]models.SuggestionItem, 0, len(items))
	for _, item := range items {
		if item.Text != text {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("suggestion %q in topic %q %w", text, topic, ErrNotFound)
	}

	next := r.data.Clone()
	next.Set(topic, kept)
	if err := r.save(next); err != nil {
		return err
	}
	r.data = next
	return nil
}
