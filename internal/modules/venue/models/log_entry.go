package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Source tags recorded for every chat answer.
const (
	SourceKnowledgeBase = "knowledge_base"
	SourceSuggestionMap = "suggestion_map"
	SourceExternalModel = "external_model"
	SourceError         = "error"
)

// LogEntry is one resolved chat exchange.
type LogEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	UserID    string    `gorm:"type:text" json:"user_id,omitempty"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Source    string    `gorm:"type:text;not null;index" json:"source"`
	Topic     string    `gorm:"type:text" json:"topic,omitempty"`
}

// TableName specifies the table name
func (LogEntry) TableName() string {
	return "venue_chat_logs"
}

// BeforeCreate sets UUID before creating
func (e *LogEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
