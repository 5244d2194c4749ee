package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/models"
)

// applicationFlow lists where each application status may move next.
// HIRED and REJECTED are final.
var applicationFlow = map[models.ApplicationStatus][]models.ApplicationStatus{
	models.ApplicationApplied:     {models.ApplicationShortlisted, models.ApplicationRejected},
	models.ApplicationShortlisted: {models.ApplicationInterview, models.ApplicationRejected},
	models.ApplicationInterview:   {models.ApplicationHired, models.ApplicationRejected},
}

func parseApplicationStatus(raw string) (models.ApplicationStatus, bool) {
	s := models.ApplicationStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case models.ApplicationApplied, models.ApplicationShortlisted, models.ApplicationInterview,
		models.ApplicationHired, models.ApplicationRejected:
		return s, true
	}
	return "", false
}

// CanTransition reports whether an application may move from one status to another.
func CanTransition(from, to models.ApplicationStatus) bool {
	return slices.Contains(applicationFlow[from], to)
}

type HiringService struct {
	hiring models.HiringRepo
}

func NewHiringService(hiring models.HiringRepo) *HiringService {
	return &HiringService{hiring: hiring}
}

func (hs *HiringService) ListApplications(ctx context.Context, status string, accessToken string) ([]models.JobApplication, error) {
	var filter models.ApplicationStatus
	if strings.TrimSpace(status) != "" {
		s, ok := parseApplicationStatus(status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown application status %q", ErrInvalidInput, status)
		}
		filter = s
	}
	return hs.hiring.ListApplications(ctx, filter, accessToken)
}

func (hs *HiringService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes string, accessToken string) (*models.JobApplication, error) {
	to, ok := parseApplicationStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown application status %q", ErrInvalidInput, status)
	}

	app, err := hs.hiring.GetApplication(ctx, id, accessToken)
	if err != nil {
		return nil, err
	}
	from, _ := parseApplicationStatus(string(app.Status))
	if !CanTransition(from, to) {
		return nil, fmt.Errorf("application %s cannot move from %s to %s: %w", id, app.Status, to, ErrActionNotAllowed)
	}

	return hs.hiring.UpdateApplicationStatus(ctx, id, to, helpers.StringTrim(notes), accessToken)
}
