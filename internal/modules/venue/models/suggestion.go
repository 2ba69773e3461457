package models

// SuggestionItem is a clickable follow-up prompt with its canned answer.
// Text is unique within a topic.
type SuggestionItem struct {
	Text     string `json:"text"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SuggestionRef is what the chat widget renders: label plus the phrase it
// sends back.
type SuggestionRef struct {
	Text     string `json:"text"`
	Question string `json:"question"`
}

// Ref drops the answer.
func (s SuggestionItem) Ref() SuggestionRef {
	return SuggestionRef{Text: s.Text, Question: s.Question}
}

// DefaultTopic is used when no topic matches.
const DefaultTopic = "default"
