package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/leadvine/leadvine/internal/domain"
	"github.com/leadvine/leadvine/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject tenant into context for DoCtx
// ---------------------------------------------------------------------------

func tenantCtx(tenantID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyTenantID, tenantID)
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	leads domain.LeadRepository
}

func (m *mockDataStore) Leads() domain.LeadRepository { return m.leads }

// ---------------------------------------------------------------------------
// Mock LeadRepository
// ---------------------------------------------------------------------------

type mockLeadRepo struct {
	createFunc       func(ctx context.Context, l *domain.Lead) error
	listFunc         func(ctx context.Context, tenantID uuid.UUID, f domain.LeadFilter) ([]*domain.Lead, int, error)
	updateStatusFunc func(ctx context.Context, tenantID, id uuid.UUID, status domain.LeadStatus) (*domain.Lead, error)
}

func (m *mockLeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	return m.createFunc(ctx, l)
}

func (m *mockLeadRepo) List(ctx context.Context, tenantID uuid.UUID, f domain.LeadFilter) ([]*domain.Lead, int, error) {
	return m.listFunc(ctx, tenantID, f)
}

func (m *mockLeadRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.LeadStatus) (*domain.Lead, error) {
	return m.updateStatusFunc(ctx, tenantID, id, status)
}
