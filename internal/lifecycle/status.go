// Package lifecycle decides which guest and owner actions a booking allows
// in its current state.
package lifecycle

import (
	"strings"

	"github.com/joshua-takyi/staydesk/internal/models"
)

type Status string

const (
	StatusUnknown           Status = "UNKNOWN"
	StatusConfirmed         Status = "CONFIRMED"
	StatusPreCheckedIn      Status = "PRE_CHECKED_IN"
	StatusCheckedIn         Status = "CHECKED_IN"
	StatusCheckoutRequested Status = "CHECKOUT_REQUESTED"
	StatusCheckedOut        Status = "CHECKED_OUT"
	StatusCancelled         Status = "CANCELLED"
	StatusNoShow            Status = "NO_SHOW"
)

// statusSynonyms maps every booking status spelling seen in the bookings
// table onto a Status. Keys are upper case with '_' separators.
var statusSynonyms = map[string]Status{
	"CONFIRMED": StatusConfirmed,
	"BOOKED":    StatusConfirmed,
	"RESERVED":  StatusConfirmed,
	"PENDING":   StatusConfirmed,

	"PRE_CHECKED_IN":   StatusPreCheckedIn,
	"PRECHECKED_IN":    StatusPreCheckedIn,
	"PRE_CHECKIN_DONE": StatusPreCheckedIn,

	"CHECKED_IN": StatusCheckedIn,
	"CHECKIN":    StatusCheckedIn,
	"INHOUSE":    StatusCheckedIn,
	"IN_HOUSE":   StatusCheckedIn,

	"CHECKOUT_REQUESTED": StatusCheckoutRequested,
	"CHECKOUT_PENDING":   StatusCheckoutRequested,

	"CHECKED_OUT": StatusCheckedOut,
	"CHECKOUT":    StatusCheckedOut,
	"COMPLETED":   StatusCheckedOut,

	"CANCELLED": StatusCancelled,
	"CANCELED":  StatusCancelled,

	"NO_SHOW": StatusNoShow,
	"NOSHOW":  StatusNoShow,
}

func NormalizeStatus(raw string) Status {
	key := strings.ToUpper(strings.TrimSpace(raw))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if s, ok := statusSynonyms[key]; ok {
		return s
	}
	return StatusUnknown
}

// StatusOf prefers the stored status and falls back to the actual
// check-in/check-out timestamps when the stored value is missing or unknown.
func StatusOf(b *models.BookingSnapshot) Status {
	if b == nil {
		return StatusUnknown
	}
	if s := NormalizeStatus(b.Status); s != StatusUnknown {
		return s
	}
	switch {
	case b.ActualCheckoutAt.IsSet():
		return StatusCheckedOut
	case b.ActualCheckinAt.IsSet():
		return StatusCheckedIn
	case b.CreatedAt.IsSet():
		return StatusConfirmed
	}
	return StatusUnknown
}
