package lifecycle

import (
	"slices"

	"github.com/joshua-takyi/staydesk/internal/folio"
	"github.com/joshua-takyi/staydesk/internal/models"
)

type Action string

const (
	ActionPreCheckin      Action = "pre_checkin"
	ActionViewBill        Action = "view_bill"
	ActionOrderFood       Action = "order_food"
	ActionRequestService  Action = "request_service"
	ActionRequestCheckout Action = "request_checkout"
	ActionWriteReview     Action = "write_review"

	ActionCollectPayment Action = "collect_payment"
	ActionCheckoutStay   Action = "checkout_stay"
)

var guestActions = map[Status][]Action{
	StatusConfirmed:         {ActionPreCheckin},
	StatusPreCheckedIn:      {ActionPreCheckin},
	StatusCheckedIn:         {ActionViewBill, ActionOrderFood, ActionRequestService, ActionRequestCheckout},
	StatusCheckoutRequested: {ActionViewBill, ActionWriteReview},
	StatusCheckedOut:        {ActionViewBill, ActionWriteReview},
}

// GuestActions lists what the guest may do in status. The result is a fresh
// slice the caller may keep.
func GuestActions(s Status) []Action {
	return slices.Clone(guestActions[s])
}

// OwnerActions lists the folio actions staff may take.
func OwnerActions(s Status, summary models.FinancialSummary) []Action {
	var actions []Action
	if s != StatusCancelled && s != StatusNoShow && s != StatusUnknown && folio.CanCollectPayment(summary) {
		actions = append(actions, ActionCollectPayment)
	}
	if (s == StatusCheckedIn || s == StatusCheckoutRequested) && folio.IsSettled(summary) {
		actions = append(actions, ActionCheckoutStay)
	}
	return actions
}

func Allows(actions []Action, a Action) bool {
	return slices.Contains(actions, a)
}
