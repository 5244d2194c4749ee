package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

// ArrivalRow is one row of v_arrival_dashboard_rows: a booking due to arrive
// on arrival_date together with its room readiness and payment position.
type ArrivalRow struct {
	BookingID           uuid.UUID `db:"booking_id" json:"booking_id"`
	Code                string    `db:"code" json:"code"`
	GuestName           string    `db:"guest_name" json:"guest_name"`
	GuestPhone          string    `db:"guest_phone" json:"guest_phone,omitempty"`
	RoomNumbers         string    `db:"room_numbers" json:"room_numbers,omitempty"`
	Source              string    `db:"source" json:"source,omitempty"`
	Adults              int       `db:"adults" json:"adults"`
	Children            int       `db:"children" json:"children"`
	ArrivalDate         string    `db:"arrival_date" json:"arrival_date"`
	ScheduledCheckinAt  Timestamp `db:"scheduled_checkin_at" json:"scheduled_checkin_at"`
	ScheduledCheckoutAt Timestamp `db:"scheduled_checkout_at" json:"scheduled_checkout_at"`
	OperationalState    string    `db:"arrival_operational_state" json:"arrival_operational_state"`
	PreCheckinDone      bool      `db:"precheckin_submitted" json:"precheckin_submitted"`
	PaymentStatus       string    `db:"payment_status" json:"payment_status"`
	AmountDue           float64   `db:"amount_due" json:"amount_due"`
}

type ArrivalsRepo interface {
	ListArrivals(ctx context.Context, date string, accessToken string) ([]ArrivalRow, error)
}

// ListArrivals returns the rows for a YYYY-MM-DD hotel-local arrival date,
// earliest scheduled check-in first.
func (su *SupabaseRepo) ListArrivals(ctx context.Context, date string, accessToken string) ([]ArrivalRow, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(ArrivalDashboardView).
		Select("*", "", false).
		Eq("arrival_date", date).
		Order("scheduled_checkin_at", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list arrivals: %w", err)
	}

	rows := []ArrivalRow{}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal arrival rows: %w", err)
	}
	return rows, nil
}
