package models

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "APPLIED"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationInterview   ApplicationStatus = "INTERVIEW"
	ApplicationHired       ApplicationStatus = "HIRED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
)

type JobApplication struct {
	ID        uuid.UUID         `db:"id" json:"id"`
	FullName  string            `db:"full_name" json:"full_name"`
	Email     string            `db:"email" json:"email"`
	Phone     string            `db:"phone" json:"phone,omitempty"`
	Position  string            `db:"position" json:"position"`
	Status    ApplicationStatus `db:"status" json:"status"`
	Notes     string            `db:"notes" json:"notes,omitempty"`
	CreatedAt Timestamp         `db:"created_at" json:"created_at"`
	UpdatedAt Timestamp         `db:"updated_at" json:"updated_at"`
}

type HiringRepo interface {
	ListApplications(ctx context.Context, status ApplicationStatus, accessToken string) ([]JobApplication, error)
	GetApplication(ctx context.Context, id uuid.UUID, accessToken string) (*JobApplication, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus, notes string, accessToken string) (*JobApplication, error)
}

// ListApplications lists applications newest first; an empty status lists all.
func (su *SupabaseRepo) ListApplications(ctx context.Context, status ApplicationStatus, accessToken string) ([]JobApplication, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	query := client.From(JobApplicationsTable).Select("*", "", false)
	if status != "" {
		query = query.Eq("status", string(status))
	}
	raw, _, err := query.Order("created_at", &postgrest.OrderOpts{Ascending: false}).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list job applications: %w", err)
	}

	apps := []JobApplication{}
	if err := json.Unmarshal(raw, &apps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job applications: %w", err)
	}
	return apps, nil
}

func (su *SupabaseRepo) GetApplication(ctx context.Context, id uuid.UUID, accessToken string) (*JobApplication, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	raw, _, err := client.From(JobApplicationsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get job application: %w", err)
	}

	var apps []JobApplication
	if err := json.Unmarshal(raw, &apps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job application: %w", err)
	}
	if len(apps) == 0 {
		return nil, fmt.Errorf("job application %s: %w", id, ErrNotFound)
	}
	return &apps[0], nil
}

func (su *SupabaseRepo) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status ApplicationStatus, notes string, accessToken string) (*JobApplication, error) {
	client, err := su.GetAuthenticatedClient(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated client: %w", err)
	}

	update := map[string]interface{}{"status": status}
	if notes != "" {
		update["notes"] = notes
	}

	raw, count, err := client.From(JobApplicationsTable).
		Update(update, "representation", "exact").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to update job application: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("job application %s: %w", id, ErrNotFound)
	}

	var apps []JobApplication
	if err := json.Unmarshal(raw, &apps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal updated job application: %w", err)
	}
	if len(apps) == 0 {
		return nil, fmt.Errorf("no job application returned after update")
	}
	return &apps[0], nil
}
