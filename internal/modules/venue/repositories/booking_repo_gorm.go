package repositories

import (
	"gorm.io/gorm"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
)

type bookingRepoGorm struct {
	db *gorm.DB
}

// NewBookingRepoGorm stores bookings in the venue_bookings table.
func NewBookingRepoGorm(db *gorm.DB) BookingRepo {
	return &bookingRepoGorm{db: db}
}

func (r *bookingRepoGorm) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *bookingRepoGorm) List() ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Order("created_at ASC").Find(&bookings).Error
	return bookings, err
}
