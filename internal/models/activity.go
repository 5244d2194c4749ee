package models

import (
	"github.com/google/uuid"
)

// ActivityEvent is one row of v_booking_activity. The view delivers rows
// newest first, lowest sort_priority first within the same instant.
type ActivityEvent struct {
	ID            RowID     `db:"id" json:"id"`
	BookingID     uuid.UUID `db:"booking_id" json:"booking_id"`
	EventCategory string    `db:"event_category" json:"event_category"`
	EventType     string    `db:"event_type" json:"event_type"`
	EventTime     Timestamp `db:"event_time" json:"event_time"`
	SortPriority  int       `db:"sort_priority" json:"sort_priority"`
	Amount        *float64  `db:"amount" json:"amount,omitempty"`
	ActorID       RowID     `db:"actor_id" json:"actor_id,omitempty"`
	Title         string    `db:"title" json:"title,omitempty"`
	Description   string    `db:"description" json:"description,omitempty"`
}

type TimelineSource string

const (
	SourceSnapshot TimelineSource = "snapshot"
	SourceActivity TimelineSource = "activity"
	SourceLedger   TimelineSource = "ledger"
)

// TimelineItem is a display-ready entry of a booking's unified timeline.
// Ordering is carried by Timestamp and SortPriority, not by slice position.
type TimelineItem struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	Timestamp    Timestamp      `json:"timestamp"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Style        string         `json:"style"`
	IsSynthetic  bool           `json:"is_synthetic"`
	Source       TimelineSource `json:"source"`
	SourceID     string         `json:"source_id,omitempty"`
	SortPriority int            `json:"sort_priority"`
	Amount       *float64       `json:"amount,omitempty"`
}

// StaffProfile is the slice of staff_profiles the portal needs to name actors.
type StaffProfile struct {
	ID       RowID  `db:"id" json:"id"`
	FullName string `db:"full_name" json:"full_name"`
	Role     string `db:"role" json:"role"`
}
