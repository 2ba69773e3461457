package models

// KnowledgeEntry is one question → answer pair. Question is stored
// lower-cased and trimmed.
type KnowledgeEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
