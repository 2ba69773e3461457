package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking is an append-only reservation request from the booking form.
type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Phone     string    `gorm:"type:text;not null" json:"phone"`
	Date      string    `gorm:"type:text;not null" json:"date"`
	Guests    int       `gorm:"not null" json:"guests"`
	EventType string    `gorm:"type:text;not null" json:"event_type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "venue_bookings"
}

// BeforeCreate sets UUID before creating
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
