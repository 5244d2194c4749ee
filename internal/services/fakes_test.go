package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/supabase-community/gotrue-go/types"
)

var errBackend = errors.New("backend unavailable")

type fakeStays struct {
	mu sync.Mutex

	bookings map[uuid.UUID]*models.BookingSnapshot
	ledger   map[uuid.UUID][]models.LedgerEntry
	activity map[uuid.UUID][]models.ActivityEvent
	staff    []models.StaffProfile
	orders   []models.FoodOrder

	staffErr    error
	ledgerErr   error
	saveErr     error
	checkoutErr error

	paymentStateErr error

	staffLookups   [][]string
	precheckins    []*models.PreCheckin
	requests       []*models.ServiceRequest
	checkoutCalls  int
	payments       []*models.PaymentCollection
	checkoutStays  int
	onCollect      func(p *models.PaymentCollection)
	onCheckoutStay func(id uuid.UUID)
}

func newFakeStays() *fakeStays {
	return &fakeStays{
		bookings: map[uuid.UUID]*models.BookingSnapshot{},
		ledger:   map[uuid.UUID][]models.LedgerEntry{},
		activity: map[uuid.UUID][]models.ActivityEvent{},
	}
}

func (f *fakeStays) GetStay(ctx context.Context, id uuid.UUID, _ string) (*models.BookingSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStays) ListLedger(ctx context.Context, id uuid.UUID, _ string) ([]models.LedgerEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ledgerErr != nil {
		return nil, f.ledgerErr
	}
	return append([]models.LedgerEntry{}, f.ledger[id]...), nil
}

func (f *fakeStays) ListActivity(ctx context.Context, id uuid.UUID, _ string) ([]models.ActivityEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ActivityEvent{}, f.activity[id]...), nil
}

func (f *fakeStays) StaffNames(ctx context.Context, ids []string, _ string) ([]models.StaffProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staffLookups = append(f.staffLookups, ids)
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	return f.staff, nil
}

func (f *fakeStays) ListFoodOrders(ctx context.Context, id uuid.UUID, _ string) ([]models.FoodOrder, error) {
	return f.orders, nil
}

func (f *fakeStays) PaymentState(ctx context.Context, id uuid.UUID, _ string) (*models.PaymentState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.paymentStateErr != nil {
		return nil, f.paymentStateErr
	}
	return &models.PaymentState{BookingID: id, PaymentStatus: "PARTIAL"}, nil
}

func (f *fakeStays) SubmitPreCheckin(ctx context.Context, p *models.PreCheckin, _ string) (*models.PreCheckin, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.precheckins = append(f.precheckins, p)
	return p, nil
}

func (f *fakeStays) CreateServiceRequest(ctx context.Context, r *models.ServiceRequest, _ string) (*models.ServiceRequest, error) {
	f.requests = append(f.requests, r)
	return r, nil
}

func (f *fakeStays) RequestCheckout(ctx context.Context, id uuid.UUID, _ string) error {
	f.checkoutCalls++
	return f.checkoutErr
}

func (f *fakeStays) CollectPayment(ctx context.Context, p *models.PaymentCollection, _ string) error {
	f.payments = append(f.payments, p)
	if f.onCollect != nil {
		f.onCollect(p)
	}
	return nil
}

func (f *fakeStays) CheckoutStay(ctx context.Context, id uuid.UUID, _ string) error {
	f.checkoutStays++
	if f.onCheckoutStay != nil {
		f.onCheckoutStay(id)
	}
	return nil
}

type fakeDocuments struct {
	uploaded []string
	deleted  []string
	err      error
}

func (d *fakeDocuments) Upload(ctx context.Context, sources []string) ([]string, []string, error) {
	if d.err != nil {
		return nil, nil, d.err
	}
	var urls, ids []string
	for i := range sources {
		id := "precheckin/doc-" + string(rune('a'+i))
		urls = append(urls, "https://res.cloudinary.test/"+id+".jpg")
		ids = append(ids, id)
	}
	d.uploaded = append(d.uploaded, ids...)
	return urls, ids, nil
}

func (d *fakeDocuments) Delete(ctx context.Context, publicIDs []string) {
	d.deleted = append(d.deleted, publicIDs...)
}

type fakeReviews struct {
	created []*models.GuestReview
	byStay  map[string][]*models.GuestReview
	stats   *models.ExperienceStats
	since   time.Time
	err     error
}

func (r *fakeReviews) CreateReview(ctx context.Context, review *models.GuestReview) (*models.GuestReview, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.created = append(r.created, review)
	return review, nil
}

func (r *fakeReviews) ListReviewsByBooking(ctx context.Context, bookingID string) ([]*models.GuestReview, error) {
	return r.byStay[bookingID], nil
}

func (r *fakeReviews) ExperienceStats(ctx context.Context, since time.Time) (*models.ExperienceStats, error) {
	r.since = since
	if r.stats == nil {
		return &models.ExperienceStats{Since: since}, nil
	}
	return r.stats, nil
}

func (r *fakeReviews) EnsureIndexes(ctx context.Context) error { return nil }

type fakeArrivals struct {
	rows     []models.ArrivalRow
	lastDate string
}

func (a *fakeArrivals) ListArrivals(ctx context.Context, date string, _ string) ([]models.ArrivalRow, error) {
	a.lastDate = date
	return a.rows, nil
}

type fakeHiring struct {
	apps    map[uuid.UUID]*models.JobApplication
	updates int
	filter  models.ApplicationStatus
}

func (h *fakeHiring) ListApplications(ctx context.Context, status models.ApplicationStatus, _ string) ([]models.JobApplication, error) {
	h.filter = status
	var out []models.JobApplication
	for _, a := range h.apps {
		if status == "" || a.Status == status {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (h *fakeHiring) GetApplication(ctx context.Context, id uuid.UUID, _ string) (*models.JobApplication, error) {
	a, ok := h.apps[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (h *fakeHiring) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus, notes string, _ string) (*models.JobApplication, error) {
	h.updates++
	a := h.apps[id]
	a.Status = status
	a.Notes = notes
	cp := *a
	return &cp, nil
}

type fakeUsers struct {
	created *models.User
	user    *models.User
}

func (u *fakeUsers) CreateUser(ctx context.Context, user *models.User) (*types.SignupResponse, error) {
	u.created = user
	return &types.SignupResponse{}, nil
}

func (u *fakeUsers) AuthenticateUser(ctx context.Context, email, password string) (*types.TokenResponse, error) {
	if password != "Correct#Horse1" {
		return nil, errBackend
	}
	return &types.TokenResponse{}, nil
}

func (u *fakeUsers) RefreshToken(ctx context.Context, refreshToken string) (*types.TokenResponse, error) {
	return &types.TokenResponse{}, nil
}

func (u *fakeUsers) GetUser(ctx context.Context, id uuid.UUID, _ string) (*models.User, error) {
	if u.user == nil {
		return nil, models.ErrNotFound
	}
	return u.user, nil
}
