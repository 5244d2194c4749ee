package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/folio"
	"github.com/joshua-takyi/staydesk/internal/lifecycle"
	"github.com/joshua-takyi/staydesk/internal/models"
)

// FolioService runs the owner console's money and checkout actions. Every
// call is made on behalf of staff.
type FolioService struct {
	stays  models.StayRepo
	folios models.FolioRepo
	stay   *StayService
}

func NewFolioService(stays models.StayRepo, folios models.FolioRepo, stay *StayService) *FolioService {
	return &FolioService{
		stays:  stays,
		folios: folios,
		stay:   stay,
	}
}

type PaymentResult struct {
	Folio    *FolioView            `json:"folio"`
	Timeline []models.TimelineItem `json:"timeline"`
}

func staffViewer(v Viewer) Viewer {
	v.Staff = true
	return v
}

func (fs *FolioService) currentFolio(ctx context.Context, bookingID uuid.UUID, accessToken string) (*FolioView, error) {
	b, err := fs.stays.GetStay(ctx, bookingID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load stay: %w", err)
	}
	entries, err := fs.stays.ListLedger(ctx, bookingID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger: %w", err)
	}
	view := newFolioView(b, entries, true)
	view.PaymentState = fs.stay.paymentState(ctx, bookingID, accessToken)
	return view, nil
}

// CollectPayment posts a payment against the outstanding balance and returns
// the refreshed folio and timeline. It is refused when nothing is owed.
func (fs *FolioService) CollectPayment(ctx context.Context, bookingID uuid.UUID, viewer Viewer, p *models.PaymentCollection, accessToken string) (*PaymentResult, error) {
	p.Method = models.PaymentMethod(strings.ToUpper(strings.TrimSpace(string(p.Method))))
	if err := models.Validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current, err := fs.currentFolio(ctx, bookingID, accessToken)
	if err != nil {
		return nil, err
	}
	if !lifecycle.Allows(current.Actions, lifecycle.ActionCollectPayment) {
		return nil, fmt.Errorf("collect payment with %s outstanding while %s: %w",
			folio.FormatAmount(current.Summary.Outstanding), current.Status, ErrActionNotAllowed)
	}
	// compare in paise to dodge float noise
	if math.Round(p.Amount*100) > math.Round(current.Summary.Outstanding*100) {
		return nil, fmt.Errorf("%w: amount %s exceeds outstanding %s", ErrInvalidInput,
			folio.FormatAmount(p.Amount), folio.FormatAmount(current.Summary.Outstanding))
	}

	p.BookingID = bookingID
	if err := fs.folios.CollectPayment(ctx, p, accessToken); err != nil {
		return nil, fmt.Errorf("failed to collect payment: %w", err)
	}

	refreshed, err := fs.currentFolio(ctx, bookingID, accessToken)
	if err != nil {
		return nil, err
	}
	items, err := fs.stay.Timeline(ctx, bookingID, staffViewer(viewer), accessToken)
	if err != nil {
		return nil, err
	}
	return &PaymentResult{Folio: refreshed, Timeline: items}, nil
}

// CheckoutStay closes a settled, checked-in stay.
func (fs *FolioService) CheckoutStay(ctx context.Context, bookingID uuid.UUID, accessToken string) (*FolioView, error) {
	current, err := fs.currentFolio(ctx, bookingID, accessToken)
	if err != nil {
		return nil, err
	}
	if !lifecycle.Allows(current.Actions, lifecycle.ActionCheckoutStay) {
		return nil, fmt.Errorf("checkout with %s outstanding while %s: %w",
			folio.FormatAmount(current.Summary.Outstanding), current.Status, ErrActionNotAllowed)
	}

	if err := fs.folios.CheckoutStay(ctx, bookingID, accessToken); err != nil {
		return nil, fmt.Errorf("failed to check out stay: %w", err)
	}
	return fs.currentFolio(ctx, bookingID, accessToken)
}
