package models

import (
	"github.com/google/uuid"
)

// BookingSnapshot is one reservation as the bookings table exposes it.
type BookingSnapshot struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	Code                string    `db:"code" json:"code"`
	GuestName           string    `db:"guest_name" json:"guest_name"`
	GuestUserID         uuid.UUID `db:"guest_user_id" json:"guest_user_id"`
	ScheduledCheckinAt  Timestamp `db:"scheduled_checkin_at" json:"scheduled_checkin_at"`
	ScheduledCheckoutAt Timestamp `db:"scheduled_checkout_at" json:"scheduled_checkout_at"`
	ActualCheckinAt     Timestamp `db:"actual_checkin_at" json:"actual_checkin_at"`
	ActualCheckoutAt    Timestamp `db:"actual_checkout_at" json:"actual_checkout_at"`
	RoomNumbers         string    `db:"room_numbers" json:"room_numbers,omitempty"`
	Source              string    `db:"source" json:"source,omitempty"`
	// status as stored by the backend, e.g. "CONFIRMED", "inhouse"
	Status    string    `db:"status" json:"status,omitempty"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}

// HasValidSchedule reports whether the scheduled check-out is after the
// scheduled check-in.
func (b *BookingSnapshot) HasValidSchedule() bool {
	if !b.ScheduledCheckinAt.Valid || !b.ScheduledCheckoutAt.Valid {
		return false
	}
	return b.ScheduledCheckoutAt.Time.After(b.ScheduledCheckinAt.Time)
}

// Nights is the number of scheduled nights, zero when the schedule is broken.
func (b *BookingSnapshot) Nights() int {
	if !b.HasValidSchedule() {
		return 0
	}
	d := b.ScheduledCheckoutAt.Time.Sub(b.ScheduledCheckinAt.Time)
	nights := int(d.Hours() / 24)
	if d.Hours() > float64(nights*24) {
		nights++
	}
	return nights
}

// PreCheckin is what a guest submits before arrival.
type PreCheckin struct {
	BookingID       uuid.UUID `db:"booking_id" json:"booking_id"`
	IDType          string    `db:"id_type" json:"id_type" validate:"required,oneof=PASSPORT NATIONAL_ID DRIVING_LICENCE"`
	IDNumber        string    `db:"id_number" json:"id_number" validate:"required,min=4,max=32"`
	IDImages        []string  `db:"id_images" json:"id_images,omitempty" validate:"max=4"`
	ExpectedArrival string    `db:"expected_arrival" json:"expected_arrival,omitempty"`
	Adults          int       `db:"adults" json:"adults" validate:"min=1,max=10"`
	Children        int       `db:"children" json:"children" validate:"min=0,max=10"`
	SpecialRequest  string    `db:"special_request" json:"special_request,omitempty" validate:"max=500"`
	SubmittedAt     Timestamp `db:"submitted_at" json:"submitted_at"`
}

type ServiceRequestCategory string

const (
	ServiceHousekeeping ServiceRequestCategory = "HOUSEKEEPING"
	ServiceMaintenance  ServiceRequestCategory = "MAINTENANCE"
	ServiceLaundry      ServiceRequestCategory = "LAUNDRY"
	ServiceTransport    ServiceRequestCategory = "TRANSPORT"
	ServiceOther        ServiceRequestCategory = "OTHER"
)

// ServiceRequest is an in-stay request raised by the guest.
type ServiceRequest struct {
	ID        uuid.UUID              `db:"id" json:"id"`
	BookingID uuid.UUID              `db:"booking_id" json:"booking_id"`
	Category  ServiceRequestCategory `db:"category" json:"category" validate:"required,oneof=HOUSEKEEPING MAINTENANCE LAUNDRY TRANSPORT OTHER"`
	Note      string                 `db:"note" json:"note" validate:"max=500"`
	Status    string                 `db:"status" json:"status"`
	CreatedAt Timestamp              `db:"created_at" json:"created_at"`
}

// FoodOrder is one row of v_guest_food_orders.
type FoodOrder struct {
	ID        uuid.UUID `db:"id" json:"id"`
	BookingID uuid.UUID `db:"booking_id" json:"booking_id"`
	Items     string    `db:"items_summary" json:"items_summary"`
	Total     float64   `db:"total_amount" json:"total_amount"`
	Status    string    `db:"status" json:"status"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}

// PaymentState is one row of v_arrival_payment_state.
type PaymentState struct {
	BookingID     uuid.UUID `db:"booking_id" json:"booking_id"`
	PaymentStatus string    `db:"payment_status" json:"payment_status"` // eg "UNPAID", "PARTIAL", "PAID"
	AmountDue     float64   `db:"amount_due" json:"amount_due"`
	AmountPaid    float64   `db:"amount_paid" json:"amount_paid"`
}
