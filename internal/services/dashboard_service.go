package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joshua-takyi/staydesk/internal/lifecycle"
	"github.com/joshua-takyi/staydesk/internal/models"
)

const (
	defaultExperienceDays = 30
	maxExperienceDays     = 365
)

type DashboardService struct {
	arrivals models.ArrivalsRepo
	reviews  models.ReviewsRepo
	location *time.Location
	now      func() time.Time
}

func NewDashboardService(arrivals models.ArrivalsRepo, reviews models.ReviewsRepo, location *time.Location) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		arrivals: arrivals,
		reviews:  reviews,
		location: location,
		now:      time.Now,
	}
}

// ArrivalFilter narrows the arrivals board. Search matches guest name,
// booking code and room numbers; State keeps one badge.
type ArrivalFilter struct {
	Search string
	State  string
}

type ArrivalCard struct {
	models.ArrivalRow
	Badge lifecycle.Badge `json:"badge"`
}

type ArrivalBoard struct {
	Date   string                         `json:"date"`
	Total  int                            `json:"total"`
	Counts map[lifecycle.ArrivalState]int `json:"counts"`
	Rows   []ArrivalCard                  `json:"rows"`
}

// Today is the current date at the hotel.
func (ds *DashboardService) Today() string {
	return ds.now().In(ds.location).Format(time.DateOnly)
}

// Arrivals builds the board for a hotel-local date, today when empty. Counts
// cover every row matching the search so the state tabs keep their numbers
// while one of them is selected.
func (ds *DashboardService) Arrivals(ctx context.Context, date string, filter ArrivalFilter, accessToken string) (*ArrivalBoard, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = ds.Today()
	}
	if _, err := time.ParseInLocation(time.DateOnly, date, ds.location); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	var state lifecycle.ArrivalState
	if s := strings.TrimSpace(filter.State); s != "" && !strings.EqualFold(s, "all") {
		state = lifecycle.NormalizeArrivalState(s)
		if state == lifecycle.ArrivalOther {
			return nil, fmt.Errorf("%w: unknown arrival state %q", ErrInvalidInput, filter.State)
		}
	}

	rows, err := ds.arrivals.ListArrivals(ctx, date, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list arrivals: %w", err)
	}

	board := &ArrivalBoard{
		Date:   date,
		Counts: make(map[lifecycle.ArrivalState]int, len(lifecycle.ArrivalStates)),
		Rows:   []ArrivalCard{},
	}
	for _, st := range lifecycle.ArrivalStates {
		board.Counts[st] = 0
	}

	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, row := range rows {
		if needle != "" && !matchesArrival(row, needle) {
			continue
		}
		badge := lifecycle.BadgeFor(row.OperationalState)
		board.Counts[badge.State]++
		board.Total++
		if state != "" && badge.State != state {
			continue
		}
		board.Rows = append(board.Rows, ArrivalCard{ArrivalRow: row, Badge: badge})
	}
	return board, nil
}

func matchesArrival(row models.ArrivalRow, needle string) bool {
	for _, field := range []string{row.GuestName, row.Code, row.RoomNumbers, row.GuestPhone} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Experience summarises guest reviews over the last days days.
func (ds *DashboardService) Experience(ctx context.Context, days int) (*models.ExperienceStats, error) {
	if days == 0 {
		days = defaultExperienceDays
	}
	if days < 1 || days > maxExperienceDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, maxExperienceDays)
	}
	since := ds.now().UTC().AddDate(0, 0, -days)

	stats, err := ds.reviews.ExperienceStats(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load experience stats: %w", err)
	}
	return stats, nil
}
