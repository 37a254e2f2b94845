package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusLost      LeadStatus = "lost"
)

// Valid reports whether s is one of the closed set of lead statuses.
// Anything else must be rejected at the boundary before reaching the core.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusQualified, LeadStatusLost:
		return true
	default:
		return false
	}
}

type Lead struct {
	ID               uuid.UUID  `json:"id"`
	TenantID         uuid.UUID  `json:"tenant_id"`
	Name             string     `json:"name"`
	Domain           string     `json:"domain,omitempty"`
	Status           LeadStatus `json:"status"`
	Priority         int        `json:"priority"`
	CompanySize      *int       `json:"company_size,omitempty"`
	Industry         string     `json:"industry,omitempty"`
	LastContacted    *time.Time `json:"last_contacted,omitempty"`
	PrimaryContactID *uuid.UUID `json:"-"`
	PrimaryContact   *Contact   `json:"primary_contact,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// LeadFilter narrows a tenant-scoped listing. Query matches name or domain
// case-insensitively as a substring; an empty Status matches all statuses.
// Limit and Offset are assumed already clamped by the boundary.
type LeadFilter struct {
	Query  string
	Status LeadStatus
	Limit  int
	Offset int
}

type LeadRepository interface {
	// Create persists the lead together with its optional primary contact and
	// that contact's emails in a single transaction. Nothing is visible if any
	// part fails.
	Create(ctx context.Context, l *Lead) error
	// List returns one page of leads ordered by priority descending, then
	// created_at descending, plus the total count of rows matching the filter
	// before pagination.
	List(ctx context.Context, tenantID uuid.UUID, f LeadFilter) ([]*Lead, int, error)
	// UpdateStatus sets the lead's status, recomputes its priority from the
	// updated attributes, and persists both. The read and write are atomic
	// with respect to other writers of the same lead. Returns the updated
	// lead, or ErrNotFound when the id does not exist within the tenant.
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status LeadStatus) (*Lead, error)
}
