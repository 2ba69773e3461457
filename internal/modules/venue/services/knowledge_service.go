package services

import (
	"fmt"
	"io"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/kbfile"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/repositories"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// ImportResult reports a bulk import.
type ImportResult struct {
	repositories.MergeResult
	Skipped []kbfile.Issue `json:"skipped"`
}

// KnowledgeService is the knowledge editor: CRUD plus import and export in
// JSON, CSV and XLSX.
type KnowledgeService struct {
	repo repositories.KnowledgeRepo
}

func NewKnowledgeService(repo repositories.KnowledgeRepo) *KnowledgeService {
	return &KnowledgeService{repo: repo}
}

func (s *KnowledgeService) List() []models.KnowledgeEntry {
	return s.repo.List()
}

func (s *KnowledgeService) Search(term string) []models.KnowledgeEntry {
	return s.repo.Search(term)
}

func (s *KnowledgeService) Add(admin, question, answer string) error {
	if err := s.repo.Add(question, answer); err != nil {
		return err
	}
	audit(admin, "knowledge.add", map[string]interface{}{"question": utils.NormalizeQuestion(question)})
	return nil
}

func (s *KnowledgeService) Update(admin, oldQuestion, newQuestion, answer string) error {
	if err := s.repo.Update(oldQuestion, newQuestion, answer); err != nil {
		return err
	}
	audit(admin, "knowledge.edit", map[string]interface{}{
		"question":     utils.NormalizeQuestion(oldQuestion),
		"new_question": utils.NormalizeQuestion(newQuestion),
	})
	return nil
}

func (s *KnowledgeService) Delete(admin, question string) error {
	if err := s.repo.Delete(question); err != nil {
		return err
	}
	audit(admin, "knowledge.delete", map[string]interface{}{"question": utils.NormalizeQuestion(question)})
	return nil
}

// SetAnswer overwrites (or creates) an entry from the conversation log view.
func (s *KnowledgeService) SetAnswer(admin, question, answer string) error {
	if err := s.repo.Set(question, answer); err != nil {
		return err
	}
	audit(admin, "knowledge.edit_response", map[string]interface{}{"question": utils.NormalizeQuestion(question)})
	return nil
}

// Import merges a file over the current knowledge base. CSV rows that fail
// validation are skipped and reported.
func (s *KnowledgeService) Import(admin string, format kbfile.Format, r io.Reader) (ImportResult, error) {
	entries, issues, err := kbfile.Read(format, r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", repositories.ErrInvalid, err)
	}
	if entries.Len() == 0 {
		return ImportResult{}, fmt.Errorf("%w: file contains no valid entries", repositories.ErrInvalid)
	}

	res, err := s.repo.Merge(entries)
	if err != nil {
		return ImportResult{}, err
	}
	if issues == nil {
		issues = []kbfile.Issue{}
	}

	audit(admin, "knowledge.import", map[string]interface{}{
		"format":  string(format),
		"added":   res.Added,
		"updated": res.Updated,
		"skipped": len(issues),
	})
	return ImportResult{MergeResult: res, Skipped: issues}, nil
}

// Export writes the whole knowledge base.
func (s *KnowledgeService) Export(format kbfile.Format, w io.Writer) error {
	return kbfile.Write(format, w, s.repo.Snapshot())
}

func audit(admin, action string, fields map[string]interface{}) {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields["admin"] = admin
	fields["action"] = action
	utils.LogInfo("🛡️ Admin action", fields)
}
