package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/lifecycle"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFolioService(f *fakeStays) *FolioService {
	return NewFolioService(f, f, newStay(f, nil))
}

func TestCollectPayment(t *testing.T) {
	f := seedStay("CHECKED_IN")
	f.onCollect = func(p *models.PaymentCollection) {
		f.ledger[stayID] = append(f.ledger[stayID], models.LedgerEntry{
			ID: "l9", BookingID: stayID, EntryType: "PAYMENT", Amount: p.Amount, CreatedAt: ts(4 * time.Hour),
		})
	}
	svc := newFolioService(f)

	res, err := svc.CollectPayment(context.Background(), stayID, staff(), &models.PaymentCollection{Amount: 2500, Method: "upi"}, "")
	require.NoError(t, err)
	require.Len(t, f.payments, 1)
	assert.Equal(t, stayID, f.payments[0].BookingID)
	assert.Equal(t, models.MethodUPI, f.payments[0].Method)

	assert.Equal(t, 0.0, res.Folio.Summary.Outstanding)
	assert.Equal(t, []lifecycle.Action{lifecycle.ActionCheckoutStay}, res.Folio.Actions)
	assert.NotEmpty(t, res.Timeline)
}

func TestCollectPaymentRefusedWhenSettled(t *testing.T) {
	f := seedStay("CHECKED_IN")
	f.ledger[stayID] = append(f.ledger[stayID], models.LedgerEntry{ID: "l4", EntryType: "PAYMENT", Amount: 2500, CreatedAt: ts(5 * time.Hour)})
	svc := newFolioService(f)

	_, err := svc.CollectPayment(context.Background(), stayID, staff(), &models.PaymentCollection{Amount: 10, Method: "CASH"}, "")
	assert.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Empty(t, f.payments)
}

func TestCollectPaymentValidation(t *testing.T) {
	f := seedStay("CHECKED_IN")
	svc := newFolioService(f)

	_, err := svc.CollectPayment(context.Background(), stayID, staff(), &models.PaymentCollection{Amount: 0, Method: "CASH"}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CollectPayment(context.Background(), stayID, staff(), &models.PaymentCollection{Amount: 100, Method: "BARTER"}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CollectPayment(context.Background(), stayID, staff(), &models.PaymentCollection{Amount: 2500.01, Method: "CARD"}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, f.payments)
}

func TestCollectPaymentRefusedForCancelledStay(t *testing.T) {
	f := seedStay("cancelled")
	svc := newFolioService(f)

	_, err := svc.CollectPayment(context.Background(), stayID, staff(), &models.PaymentCollection{Amount: 100, Method: "CASH"}, "")
	assert.ErrorIs(t, err, ErrActionNotAllowed)
}

func TestCheckoutStay(t *testing.T) {
	f := seedStay("CHECKOUT_REQUESTED")
	svc := newFolioService(f)

	_, err := svc.CheckoutStay(context.Background(), stayID, "")
	assert.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Zero(t, f.checkoutStays)

	f.ledger[stayID] = append(f.ledger[stayID], models.LedgerEntry{ID: "l4", EntryType: "PAYMENT", Amount: 2500, CreatedAt: ts(5 * time.Hour)})
	f.onCheckoutStay = func(id uuid.UUID) { f.bookings[id].Status = "CHECKED_OUT" }

	view, err := svc.CheckoutStay(context.Background(), stayID, "")
	require.NoError(t, err)
	assert.Equal(t, 1, f.checkoutStays)
	assert.Equal(t, lifecycle.StatusCheckedOut, view.Status)
	assert.Empty(t, view.Actions)
}

func arrivalRows() []models.ArrivalRow {
	return []models.ArrivalRow{
		{BookingID: uuid.New(), Code: "BK-1", GuestName: "Asha Rao", RoomNumbers: "204", OperationalState: "READY"},
		{BookingID: uuid.New(), Code: "BK-2", GuestName: "Vikram Shah", RoomNumbers: "310", OperationalState: "waiting_housekeeping"},
		{BookingID: uuid.New(), Code: "BK-3", GuestName: "Meera Nair", RoomNumbers: "311", OperationalState: "PARTIALLY_ARRIVED"},
		{BookingID: uuid.New(), Code: "BK-4", GuestName: "Arjun Das", OperationalState: "EXPECTED"},
	}
}

func newDashboard(a *fakeArrivals, r *fakeReviews) *DashboardService {
	ist := time.FixedZone("IST", 5*3600+1800)
	ds := NewDashboardService(a, r, ist)
	ds.now = func() time.Time { return time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC) }
	return ds
}

func TestArrivalsDefaultsToHotelToday(t *testing.T) {
	a := &fakeArrivals{rows: arrivalRows()}
	ds := newDashboard(a, &fakeReviews{})

	board, err := ds.Arrivals(context.Background(), "", ArrivalFilter{}, "")
	require.NoError(t, err)
	// 20:00 UTC is already the next day in IST
	assert.Equal(t, "2024-03-10", a.lastDate)
	assert.Equal(t, "2024-03-10", board.Date)
	assert.Equal(t, 4, board.Total)
	assert.Len(t, board.Rows, 4)
	assert.Equal(t, 1, board.Counts[lifecycle.ArrivalWaitingHousekeeping])
	assert.Equal(t, 0, board.Counts[lifecycle.ArrivalNoShow])
}

func TestArrivalsFiltering(t *testing.T) {
	ds := newDashboard(&fakeArrivals{rows: arrivalRows()}, &fakeReviews{})

	board, err := ds.Arrivals(context.Background(), "2024-03-10", ArrivalFilter{State: "ready"}, "")
	require.NoError(t, err)
	require.Len(t, board.Rows, 1)
	assert.Equal(t, "BK-1", board.Rows[0].Code)
	assert.Equal(t, "Ready", board.Rows[0].Badge.Label)
	assert.Equal(t, 4, board.Total)

	board, err = ds.Arrivals(context.Background(), "2024-03-10", ArrivalFilter{Search: "31"}, "")
	require.NoError(t, err)
	assert.Len(t, board.Rows, 2)
	assert.Equal(t, 2, board.Total)

	board, err = ds.Arrivals(context.Background(), "2024-03-10", ArrivalFilter{Search: "meera"}, "")
	require.NoError(t, err)
	require.Len(t, board.Rows, 1)
	assert.Equal(t, lifecycle.ArrivalPartiallyArrived, board.Rows[0].Badge.State)
}

func TestArrivalsRejectsBadInput(t *testing.T) {
	ds := newDashboard(&fakeArrivals{}, &fakeReviews{})

	_, err := ds.Arrivals(context.Background(), "10/03/2024", ArrivalFilter{}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ds.Arrivals(context.Background(), "", ArrivalFilter{State: "SLEEPING"}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	board, err := ds.Arrivals(context.Background(), "", ArrivalFilter{State: "all"}, "")
	require.NoError(t, err)
	assert.NotNil(t, board.Rows)
}

func TestExperience(t *testing.T) {
	r := &fakeReviews{}
	ds := newDashboard(&fakeArrivals{}, r)

	_, err := ds.Experience(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 8, 20, 0, 0, 0, time.UTC), r.since)

	_, err = ds.Experience(context.Background(), 400)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateReview(t *testing.T) {
	f := seedStay("CHECKED_OUT")
	r := &fakeReviews{}
	svc := NewReviewService(f, r)

	review := &models.GuestReview{Overall: 5, Comment: "  lovely   stay ", Highlights: []string{"Pool", "pool", ""}}
	saved, err := svc.CreateReview(context.Background(), stayID, guest(), review, "")
	require.NoError(t, err)
	assert.Equal(t, stayID.String(), saved.BookingID)
	assert.Equal(t, guestID.String(), saved.GuestID)
	assert.Equal(t, "Asha Rao", saved.GuestName)
	assert.Equal(t, "lovely stay", saved.Comment)
	assert.Equal(t, []string{"Pool"}, saved.Highlights)
}

func TestCreateReviewGates(t *testing.T) {
	r := &fakeReviews{}

	svc := NewReviewService(seedStay("CHECKED_IN"), r)
	_, err := svc.CreateReview(context.Background(), stayID, guest(), &models.GuestReview{Overall: 4}, "")
	assert.ErrorIs(t, err, ErrActionNotAllowed)

	svc = NewReviewService(seedStay("CHECKED_OUT"), r)
	_, err = svc.CreateReview(context.Background(), stayID, staff(), &models.GuestReview{Overall: 4}, "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateReview(context.Background(), stayID, guest(), &models.GuestReview{Overall: 9}, "")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, r.created)

	r.err = models.ErrAlreadyExists
	_, err = svc.CreateReview(context.Background(), stayID, guest(), &models.GuestReview{Overall: 4}, "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestListReviews(t *testing.T) {
	r := &fakeReviews{byStay: map[string][]*models.GuestReview{stayID.String(): {{Overall: 4}}}}
	svc := NewReviewService(seedStay("CHECKED_OUT"), r)

	got, err := svc.ListReviews(context.Background(), stayID, staff(), "")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.ListReviews(context.Background(), stayID, Viewer{UserID: otherID}, "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.ApplicationApplied, models.ApplicationShortlisted))
	assert.True(t, CanTransition(models.ApplicationShortlisted, models.ApplicationInterview))
	assert.True(t, CanTransition(models.ApplicationInterview, models.ApplicationHired))
	assert.True(t, CanTransition(models.ApplicationInterview, models.ApplicationRejected))
	assert.False(t, CanTransition(models.ApplicationApplied, models.ApplicationHired))
	assert.False(t, CanTransition(models.ApplicationHired, models.ApplicationRejected))
	assert.False(t, CanTransition(models.ApplicationRejected, models.ApplicationApplied))
}

func TestHiringUpdateStatus(t *testing.T) {
	id := uuid.New()
	h := &fakeHiring{apps: map[uuid.UUID]*models.JobApplication{
		id: {ID: id, FullName: "Kiran", Position: "Chef", Status: models.ApplicationApplied},
	}}
	svc := NewHiringService(h)

	app, err := svc.UpdateStatus(context.Background(), id, "shortlisted", "  strong  tasting ", "")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationShortlisted, app.Status)
	assert.Equal(t, "strong tasting", app.Notes)

	_, err = svc.UpdateStatus(context.Background(), id, "HIRED", "", "")
	assert.ErrorIs(t, err, ErrActionNotAllowed)

	_, err = svc.UpdateStatus(context.Background(), id, "PROMOTED", "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), "REJECTED", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, h.updates)
}

func TestHiringList(t *testing.T) {
	h := &fakeHiring{apps: map[uuid.UUID]*models.JobApplication{}}
	svc := NewHiringService(h)

	_, err := svc.ListApplications(context.Background(), "interview", "")
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationInterview, h.filter)

	_, err = svc.ListApplications(context.Background(), "nope", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserService(t *testing.T) {
	u := &fakeUsers{}
	svc := NewUserService(u)

	_, err := svc.CreateUser(context.Background(), &models.User{FullName: " Asha  Rao ", Email: " Asha@Example.com ", Password: "Sunrise#2024", Role: "owner"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", u.created.Email)
	assert.Equal(t, "Asha Rao", u.created.FullName)
	assert.Equal(t, models.RoleGuest, u.created.Role)

	_, err = svc.CreateUser(context.Background(), &models.User{FullName: "Asha", Email: "a@b.co", Password: "weakpassword"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AuthenticateUser(context.Background(), "not-an-email", "Correct#Horse1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AuthenticateUser(context.Background(), "a@b.co", "Wrong#Horse1")
	assert.ErrorIs(t, err, errBackend)

	_, err = svc.RefreshToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetUser(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}
