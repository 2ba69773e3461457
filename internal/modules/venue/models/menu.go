package models

// MenuItem is one top-level chat button. Items are addressed by position.
type MenuItem struct {
	AdminText       string `json:"admin_text"`
	DisplayText     string `json:"display_text"`
	Question        string `json:"question"`
	Category        string `json:"category"`
	PriceInfo       string `json:"price_info"`
	SuggestionTopic string `json:"suggestion_topic"`
}

// MenuDisplayItem is the public rendering of a MenuItem.
type MenuDisplayItem struct {
	Text            string `json:"text"`
	Question        string `json:"question"`
	SuggestionTopic string `json:"suggestion_topic"`
}

// Display falls back to the admin label and the default topic.
func (m MenuItem) Display() MenuDisplayItem {
	text := m.DisplayText
	if text == "" {
		text = m.AdminText
	}
	topic := m.SuggestionTopic
	if topic == "" {
		topic = DefaultTopic
	}
	return MenuDisplayItem{Text: text, Question: m.Question, SuggestionTopic: topic}
}
