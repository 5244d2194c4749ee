package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/folio"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/lifecycle"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/joshua-takyi/staydesk/internal/timeline"
	"golang.org/x/sync/errgroup"
)

const documentUploadTimeout = 30 * time.Second

// DocumentStore keeps guest identity images. Upload returns the stored URLs
// and the ids needed to delete them again.
type DocumentStore interface {
	Upload(ctx context.Context, sources []string) (urls []string, publicIDs []string, err error)
	Delete(ctx context.Context, publicIDs []string)
}

type StayService struct {
	stays     models.StayRepo
	documents DocumentStore
	logger    *slog.Logger
}

func NewStayService(stays models.StayRepo, documents DocumentStore, logger *slog.Logger) *StayService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StayService{
		stays:     stays,
		documents: documents,
		logger:    logger,
	}
}

type StayView struct {
	Booking *models.BookingSnapshot `json:"booking"`
	Status  lifecycle.Status        `json:"status"`
	Nights  int                     `json:"nights"`
	Actions []lifecycle.Action      `json:"actions"`
}

type FolioLabels struct {
	RoomCharges   string `json:"room_charges"`
	FoodCharges   string `json:"food_charges"`
	TotalCharges  string `json:"total_charges"`
	TotalPayments string `json:"total_payments"`
	Outstanding   string `json:"outstanding"`
}

type FolioView struct {
	BookingID uuid.UUID               `json:"booking_id"`
	Status    lifecycle.Status        `json:"status"`
	Entries   []models.LedgerEntry    `json:"entries"`
	Summary   models.FinancialSummary `json:"summary"`
	Labels    FolioLabels             `json:"labels"`
	Actions   []lifecycle.Action      `json:"actions"`

	// backend's own view of the balance, staff only
	PaymentState *models.PaymentState `json:"payment_state,omitempty"`
}

func newFolioView(b *models.BookingSnapshot, entries []models.LedgerEntry, staff bool) *FolioView {
	summary := folio.Summarize(entries)
	status := lifecycle.StatusOf(b)
	actions := []lifecycle.Action{}
	if staff {
		actions = append(actions, lifecycle.OwnerActions(status, summary)...)
	}
	return &FolioView{
		BookingID: b.ID,
		Status:    status,
		Entries:   entries,
		Summary:   summary,
		Labels: FolioLabels{
			RoomCharges:   folio.FormatAmount(summary.RoomCharges),
			FoodCharges:   folio.FormatAmount(summary.FoodCharges),
			TotalCharges:  folio.FormatAmount(summary.TotalCharges),
			TotalPayments: folio.FormatAmount(summary.TotalPayments),
			Outstanding:   folio.FormatAmount(summary.Outstanding),
		},
		Actions: actions,
	}
}

// load fetches the booking and checks the viewer may see it.
func (s *StayService) load(ctx context.Context, bookingID uuid.UUID, viewer Viewer, accessToken string) (*models.BookingSnapshot, error) {
	b, err := s.stays.GetStay(ctx, bookingID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load stay: %w", err)
	}
	if err := viewer.canSee(b); err != nil {
		return nil, err
	}
	return b, nil
}

// requireGuestAction refuses non-staff callers whose stay is not in a state
// that offers action.
func requireGuestAction(b *models.BookingSnapshot, viewer Viewer, action lifecycle.Action) error {
	if viewer.Staff {
		return nil
	}
	status := lifecycle.StatusOf(b)
	if !lifecycle.Allows(lifecycle.GuestActions(status), action) {
		return fmt.Errorf("%s while %s: %w", action, status, ErrActionNotAllowed)
	}
	return nil
}

func (s *StayService) GetStay(ctx context.Context, bookingID uuid.UUID, viewer Viewer, accessToken string) (*StayView, error) {
	b, err := s.load(ctx, bookingID, viewer, accessToken)
	if err != nil {
		return nil, err
	}
	status := lifecycle.StatusOf(b)
	return &StayView{
		Booking: b,
		Status:  status,
		Nights:  b.Nights(),
		Actions: lifecycle.GuestActions(status),
	}, nil
}

// Timeline assembles the unified, newest-first timeline of a stay. Staff
// names that cannot be looked up fall back to the system actor instead of
// failing the request.
func (s *StayService) Timeline(ctx context.Context, bookingID uuid.UUID, viewer Viewer, accessToken string) ([]models.TimelineItem, error) {
	var (
		booking  *models.BookingSnapshot
		ledger   []models.LedgerEntry
		activity []models.ActivityEvent
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		booking, err = s.stays.GetStay(gctx, bookingID, accessToken)
		if err != nil {
			return fmt.Errorf("load stay: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		ledger, err = s.stays.ListLedger(gctx, bookingID, accessToken)
		if err != nil {
			return fmt.Errorf("list ledger: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		activity, err = s.stays.ListActivity(gctx, bookingID, accessToken)
		if err != nil {
			return fmt.Errorf("list activity: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := viewer.canSee(booking); err != nil {
		return nil, err
	}

	actors := s.actorNames(ctx, activity, accessToken)
	return timeline.Build(booking, ledger, activity, actors), nil
}

func (s *StayService) actorNames(ctx context.Context, activity []models.ActivityEvent, accessToken string) timeline.ActorResolver {
	seen := make(map[string]struct{})
	var ids []string
	for _, ev := range activity {
		id := strings.TrimSpace(ev.ActorID.String())
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return timeline.ActorNames{}
	}

	staff, err := s.stays.StaffNames(ctx, ids, accessToken)
	if err != nil {
		s.logger.Warn("staff name lookup failed, using system actor", "error", err, "actors", len(ids))
		return timeline.ActorNames{}
	}
	return timeline.NewActorNames(staff)
}

func (s *StayService) Folio(ctx context.Context, bookingID uuid.UUID, viewer Viewer, accessToken string) (*FolioView, error) {
	b, err := s.load(ctx, bookingID, viewer, accessToken)
	if err != nil {
		return nil, err
	}
	if err := requireGuestAction(b, viewer, lifecycle.ActionViewBill); err != nil {
		return nil, err
	}

	entries, err := s.stays.ListLedger(ctx, bookingID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger: %w", err)
	}
	view := newFolioView(b, entries, viewer.Staff)
	if viewer.Staff {
		view.PaymentState = s.paymentState(ctx, bookingID, accessToken)
	}
	return view, nil
}

// paymentState is best effort; a stay without a row simply has none.
func (s *StayService) paymentState(ctx context.Context, bookingID uuid.UUID, accessToken string) *models.PaymentState {
	state, err := s.stays.PaymentState(ctx, bookingID, accessToken)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("payment state lookup failed", "booking_id", bookingID, "error", err)
		}
		return nil
	}
	return state
}

func (s *StayService) FoodOrders(ctx context.Context, bookingID uuid.UUID, viewer Viewer, accessToken string) ([]models.FoodOrder, error) {
	b, err := s.load(ctx, bookingID, viewer, accessToken)
	if err != nil {
		return nil, err
	}
	if err := requireGuestAction(b, viewer, lifecycle.ActionViewBill); err != nil {
		return nil, err
	}

	orders, err := s.stays.ListFoodOrders(ctx, bookingID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list food orders: %w", err)
	}
	return orders, nil
}

// SubmitPreCheckin stores the guest's arrival details and identity images.
// Images are uploaded before the row is written and removed again if the
// write fails.
func (s *StayService) SubmitPreCheckin(ctx context.Context, bookingID uuid.UUID, viewer Viewer, input *models.PreCheckin, accessToken string) (*models.PreCheckin, error) {
	b, err := s.load(ctx, bookingID, viewer, accessToken)
	if err != nil {
		return nil, err
	}
	if err := requireGuestAction(b, viewer, lifecycle.ActionPreCheckin); err != nil {
		return nil, err
	}

	input.IDNumber = strings.ToUpper(helpers.StringTrim(input.IDNumber))
	input.SpecialRequest = helpers.StringTrim(input.SpecialRequest)
	if err := models.Validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var uploadedIDs []string
	if len(input.IDImages) > 0 {
		if s.documents == nil {
			return nil, fmt.Errorf("%w: document upload is not available", ErrInvalidInput)
		}
		uploadCtx, cancel := context.WithTimeout(ctx, documentUploadTimeout)
		urls, publicIDs, err := s.documents.Upload(uploadCtx, input.IDImages)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to upload identity documents: %w", err)
		}
		input.IDImages = urls
		uploadedIDs = publicIDs
	}

	input.BookingID = bookingID
	input.SubmittedAt = models.NewTimestamp(time.Now().UTC())

	saved, err := s.stays.SubmitPreCheckin(ctx, input, accessToken)
	if err != nil {
		if len(uploadedIDs) > 0 {
			s.documents.Delete(context.WithoutCancel(ctx), uploadedIDs)
		}
		return nil, err
	}
	return saved, nil
}

func (s *StayService) CreateServiceRequest(ctx context.Context, bookingID uuid.UUID, viewer Viewer, req *models.ServiceRequest, accessToken string) (*models.ServiceRequest, error) {
	b, err := s.load(ctx, bookingID, viewer, accessToken)
	if err != nil {
		return nil, err
	}
	if err := requireGuestAction(b, viewer, lifecycle.ActionRequestService); err != nil {
		return nil, err
	}

	req.Category = models.ServiceRequestCategory(strings.ToUpper(strings.TrimSpace(string(req.Category))))
	req.Note = helpers.StringTrim(req.Note)
	if err := models.Validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	req.ID = uuid.New()
	req.BookingID = bookingID
	req.Status = "OPEN"
	req.CreatedAt = models.NewTimestamp(time.Now().UTC())

	return s.stays.CreateServiceRequest(ctx, req, accessToken)
}

func (s *StayService) RequestCheckout(ctx context.Context, bookingID uuid.UUID, viewer Viewer, accessToken string) error {
	b, err := s.load(ctx, bookingID, viewer, accessToken)
	if err != nil {
		return err
	}
	status := lifecycle.StatusOf(b)
	if !lifecycle.Allows(lifecycle.GuestActions(status), lifecycle.ActionRequestCheckout) {
		return fmt.Errorf("request checkout while %s: %w", status, ErrActionNotAllowed)
	}

	if err := s.stays.RequestCheckout(ctx, bookingID, accessToken); err != nil {
		return fmt.Errorf("failed to request checkout: %w", err)
	}
	return nil
}
