package models

import (
	"strings"

	"github.com/google/uuid"
)

type EntryKind string

const (
	EntryRoomCharge EntryKind = "ROOM_CHARGE"
	EntryFoodCharge EntryKind = "FOOD_CHARGE"
	EntryPayment    EntryKind = "PAYMENT"
	EntryRefund     EntryKind = "REFUND"
	EntryOther      EntryKind = "OTHER"
)

// NormalizeEntryKind maps a raw entry_type onto the closed set of kinds.
// Anything unrecognised is OTHER.
func NormalizeEntryKind(raw string) EntryKind {
	switch k := EntryKind(strings.ToUpper(strings.TrimSpace(raw))); k {
	case EntryRoomCharge, EntryFoodCharge, EntryPayment, EntryRefund:
		return k
	default:
		return EntryOther
	}
}

// IsSettlement is true for kinds that reduce the balance rather than add to it.
func (k EntryKind) IsSettlement() bool {
	return k == EntryPayment || k == EntryRefund
}

// LedgerEntry is one posted line on a booking's folio. Amount is never
// negative; the direction comes from the kind.
type LedgerEntry struct {
	ID          RowID     `db:"id" json:"id"`
	BookingID   uuid.UUID `db:"booking_id" json:"booking_id"`
	EntryType   string    `db:"entry_type" json:"entry_type"`
	Amount      float64   `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	CreatedAt   Timestamp `db:"created_at" json:"created_at"`
}

func (e LedgerEntry) Kind() EntryKind {
	return NormalizeEntryKind(e.EntryType)
}

// FinancialSummary aggregates a folio.
type FinancialSummary struct {
	RoomCharges   float64 `json:"room_charges"`
	FoodCharges   float64 `json:"food_charges"`
	TotalCharges  float64 `json:"total_charges"`
	TotalPayments float64 `json:"total_payments"`
	Outstanding   float64 `json:"outstanding"`
}

type PaymentMethod string

const (
	MethodCash PaymentMethod = "CASH"
	MethodCard PaymentMethod = "CARD"
	MethodUPI  PaymentMethod = "UPI"
	MethodBank PaymentMethod = "BANK_TRANSFER"
)

// PaymentCollection is the input of the collect_payment procedure.
type PaymentCollection struct {
	BookingID uuid.UUID     `json:"p_booking_id"`
	Amount    float64       `json:"p_amount" validate:"gt=0"`
	Method    PaymentMethod `json:"p_method" validate:"required,oneof=CASH CARD UPI BANK_TRANSFER"`
}
