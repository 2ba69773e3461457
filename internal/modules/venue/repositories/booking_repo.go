package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/modules/venue/models"
)

// BookingRepo is append-only: there is no update or delete.
type BookingRepo interface {
	Create(booking *models.Booking) error
	List() ([]models.Booking, error)
}

type bookingRepo struct {
	file *appendFile[models.Booking]
}

// NewBookingRepo stores bookings in a JSON array file, backing up the
// previous version on every write.
func NewBookingRepo(files *filestore.Files, path string) BookingRepo {
	return &bookingRepo{file: newAppendFile[models.Booking](files, path, true)}
}

func (r *bookingRepo) Create(booking *models.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	if _, err := r.file.append(*booking); err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

func (r *bookingRepo) List() ([]models.Booking, error) {
	return r.file.list()
}
