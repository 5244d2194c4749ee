package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/models"
)

// Viewer is the authenticated caller a service acts for.
type Viewer struct {
	UserID uuid.UUID
	Name   string
	Staff  bool
}

// canSee lets guests at their own stays and staff at every stay.
func (v Viewer) canSee(b *models.BookingSnapshot) error {
	if v.Staff {
		return nil
	}
	if v.UserID == uuid.Nil || b.GuestUserID != v.UserID {
		return fmt.Errorf("booking %s: %w", b.ID, ErrForbidden)
	}
	return nil
}

// isGuestOf is stricter: only the guest on the booking.
func (v Viewer) isGuestOf(b *models.BookingSnapshot) error {
	if v.UserID == uuid.Nil || b.GuestUserID != v.UserID {
		return fmt.Errorf("booking %s: %w", b.ID, ErrForbidden)
	}
	return nil
}
