package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// KnowledgeRepo is the question → answer store backed by a JSON object file.
// Every mutation is written through with a backup of the previous file; on
// a failed write the in-memory state is left as it was.
type KnowledgeRepo interface {
	List() []models.KnowledgeEntry
	Snapshot() *filestore.OrderedMap[string]
	Len() int
	Lookup(question string) (string, bool)
	Search(term string) []models.KnowledgeEntry
	Add(question, answer string) error
	Update(oldQuestion, newQuestion, answer string) error
	Set(question, answer string) error
	Delete(question string) error
	Merge(entries *filestore.OrderedMap[string]) (MergeResult, error)
	Reload() error
}

// MergeResult counts what an import changed.
type MergeResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

type knowledgeRepo struct {
	mu    sync.RWMutex
	files *filestore.Files
	path  string
	data  *filestore.OrderedMap[string]
}

// NewKnowledgeRepo loads the knowledge file, seeding and writing defaults
// when it does not exist yet.
func NewKnowledgeRepo(files *filestore.Files, path string, defaults *filestore.OrderedMap[string]) (KnowledgeRepo, error) {
	r := &knowledgeRepo{files: files, path: path}
	if err := r.Reload(); err != nil {
		return nil, err
	}
	if r.data == nil {
		if defaults == nil {
			defaults = filestore.NewOrderedMap[string]()
		}
		if err := r.save(defaults); err != nil {
			return nil, err
		}
		r.data = defaults
		utils.LogInfo("✅ Created default knowledge base", map[string]interface{}{"path": path, "entries": defaults.Len()})
	}
	return r, nil
}

// Reload re-reads the file. A missing file leaves the store empty.
func (r *knowledgeRepo) Reload() error {
	loaded := filestore.NewOrderedMap[string]()
	found, err := r.files.ReadJSON(r.path, loaded)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !found {
		return nil
	}
	// Keys written by hand may not be normalized.
	normalized := filestore.NewOrderedMap[string]()
	loaded.Each(func(q, a string) bool {
		if q = utils.NormalizeQuestion(q); q != "" {
			normalized.Set(q, a)
		}
		return true
	})
	r.data = normalized
	return nil
}

func (r *knowledgeRepo) save(next *filestore.OrderedMap[string]) error {
	if _, err := r.files.WriteJSON(r.path, next); err != nil {
		return fmt.Errorf("failed to save knowledge base: %w", err)
	}
	return nil
}

func (r *knowledgeRepo) List() []models.KnowledgeEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.KnowledgeEntry, 0, r.data.Len())
	r.data.Each(func(q, a string) bool {
		out = append(out, models.KnowledgeEntry{Question: q, Answer: a})
		return true
	})
	return out
}

func (r *knowledgeRepo) Snapshot() *filestore.OrderedMap[string] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data.Clone()
}

func (r *knowledgeRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data.Len()
}

// Lookup is an exact match on the normalized question.
func (r *knowledgeRepo) Lookup(question string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data.Get(utils.NormalizeQuestion(question))
}

// Search matches term case-insensitively against questions and answers.
func (r *knowledgeRepo) Search(term string) []models.KnowledgeEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return r.List()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.KnowledgeEntry{}
	r.data.Each(func(q, a string) bool {
		if strings.Contains(q, term) || strings.Contains(strings.ToLower(a), term) {
			out = append(out, models.KnowledgeEntry{Question: q, Answer: a})
		}
		return true
	})
	return out
}

func validateKnowledge(question, answer string) (string, string, error) {
	question = utils.NormalizeQuestion(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return "", "", fmt.Errorf("%w: question and answer are required", ErrInvalid)
	}
	if utils.RuneLen(question) < MinQuestionLen {
		return "", "", ErrQuestionTooShort
	}
	return question, answer, nil
}

func (r *knowledgeRepo) Add(question, answer string) error {
	question, answer, err := validateKnowledge(question, answer)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.data.Has(question) {
		return fmt.Errorf("question %q %w", question, ErrDuplicate)
	}
	next := r.data.Clone()
	next.Set(question, answer)
	if err := r.save(next); err != nil {
		return err
	}
	r.data = next
	return nil
}

// Update replaces the answer and, when newQuestion differs, renames the
// entry in place.
func (r *knowledgeRepo) Update(oldQuestion, newQuestion, answer string) error {
	oldQuestion = utils.NormalizeQuestion(oldQuestion)
	if strings.TrimSpace(newQuestion) == "" {
		newQuestion = oldQuestion
	}
	newQuestion, answer, err := validateKnowledge(newQuestion, answer)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.data.Has(oldQuestion) {
		return fmt.Errorf("question %q %w", oldQuestion, ErrNotFound)
	}
	next := r.data.Clone()
	if newQuestion != oldQuestion {
		if !next.Rename(oldQuestion, newQuestion) {
			return fmt.Errorf("question %q %w", newQuestion, ErrDuplicate)
		}
	}
	next.Set(newQuestion, answer)
	if err := r.save(next); err != nil {
		return err
	}
	r.data = next
	return nil
}

// Set inserts or overwrites without the length rule. Used when an admin
// corrects an answer straight from the conversation log.
func (r *knowledgeRepo) Set(question, answer string) error {
	question = utils.NormalizeQuestion(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return fmt.Errorf("%w: question and answer are required", ErrInvalid)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.data.Clone()
	next.Set(question, answer)
	if err := r.save(next); err != nil {
		return err
	}
	r.data = next
	return nil
}

func (r *knowledgeRepo) Delete(question string) error {
	question = utils.NormalizeQuestion(question)

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.data.Has(question) {
		return fmt.Errorf("question %q %w", question, ErrNotFound)
	}
	next := r.data.Clone()
	next.Delete(question)
	if err := r.save(next); err != nil {
		return err
	}
	r.data = next
	return nil
}

// Merge upserts entries over the current store in one write. Existing keys
// keep their position.
func (r *knowledgeRepo) Merge(entries *filestore.OrderedMap[string]) (MergeResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res MergeResult
	next := r.data.Clone()
	entries.Each(func(q, a string) bool {
		q = utils.NormalizeQuestion(q)
		a = strings.TrimSpace(a)
		if q == "" || a == "" {
			return true
		}
		if old, ok := next.Get(q); ok {
			if old != a {
				res.Updated++
			}
		} else {
			res.Added++
		}
		next.Set(q, a)
		return true
	})

	if res.Added == 0 && res.Updated == 0 {
		res.Total = next.Len()
		return res, nil
	}
	if err := r.save(next); err != nil {
		return MergeResult{}, err
	}
	r.data = next
	res.Total = next.Len()
	return res, nil
}
