// Package folio aggregates a booking's ledger into the totals shown on the
// bill and used to gate payment collection.
package folio

import (
	"math"

	"github.com/joshua-takyi/staydesk/internal/models"
)

// Summarize totals a ledger. Unknown entry kinds count as charges.
func Summarize(ledger []models.LedgerEntry) models.FinancialSummary {
	var s models.FinancialSummary
	for _, e := range ledger {
		switch kind := e.Kind(); {
		case kind.IsSettlement():
			s.TotalPayments += math.Abs(e.Amount)
		default:
			s.TotalCharges += e.Amount
			if kind == models.EntryRoomCharge {
				s.RoomCharges += e.Amount
			}
			if kind == models.EntryFoodCharge {
				s.FoodCharges += e.Amount
			}
		}
	}
	s.Outstanding = math.Max(0, s.TotalCharges-s.TotalPayments)
	return s
}

// CanCollectPayment is true while the guest still owes money.
func CanCollectPayment(s models.FinancialSummary) bool {
	return s.Outstanding > 0
}

// IsSettled is the inverse of CanCollectPayment.
func IsSettled(s models.FinancialSummary) bool {
	return !CanCollectPayment(s)
}
