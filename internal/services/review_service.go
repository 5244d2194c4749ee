package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/lifecycle"
	"github.com/joshua-takyi/staydesk/internal/models"
)

type ReviewService struct {
	stays   models.StayRepo
	reviews models.ReviewsRepo
}

func NewReviewService(stays models.StayRepo, reviews models.ReviewsRepo) *ReviewService {
	return &ReviewService{
		stays:   stays,
		reviews: reviews,
	}
}

func sanitizeReview(r *models.GuestReview) {
	r.Comment = helpers.StringTrim(r.Comment)
	r.Highlights = helpers.RemoveDuplicates(r.Highlights)
}

// CreateReview records the guest's review of a stay. Only the guest on the
// booking may write one, and only once the stay is winding down.
func (rs *ReviewService) CreateReview(ctx context.Context, bookingID uuid.UUID, viewer Viewer, review *models.GuestReview, accessToken string) (*models.GuestReview, error) {
	b, err := rs.stays.GetStay(ctx, bookingID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load stay: %w", err)
	}
	if err := viewer.isGuestOf(b); err != nil {
		return nil, err
	}
	status := lifecycle.StatusOf(b)
	if !lifecycle.Allows(lifecycle.GuestActions(status), lifecycle.ActionWriteReview) {
		return nil, fmt.Errorf("review while %s: %w", status, ErrActionNotAllowed)
	}

	sanitizeReview(review)
	if err := models.Validate.Struct(review); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	review.BookingID = bookingID.String()
	review.GuestID = viewer.UserID.String()
	review.GuestName = strings.TrimSpace(viewer.Name)
	if review.GuestName == "" {
		review.GuestName = b.GuestName
	}

	return rs.reviews.CreateReview(ctx, review)
}

func (rs *ReviewService) ListReviews(ctx context.Context, bookingID uuid.UUID, viewer Viewer, accessToken string) ([]*models.GuestReview, error) {
	b, err := rs.stays.GetStay(ctx, bookingID, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load stay: %w", err)
	}
	if err := viewer.canSee(b); err != nil {
		return nil, err
	}
	return rs.reviews.ListReviewsByBooking(ctx, bookingID.String())
}
