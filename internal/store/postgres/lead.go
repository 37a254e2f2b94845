package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadvine/leadvine/internal/domain"
)

const leadColumns = `id, tenant_id, name, domain, status, priority, company_size, industry, last_contacted, primary_contact_id, created_at`

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the scan and
// contact-loading helpers can run inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type LeadRepo struct {
	pool *pgxpool.Pool
}

func NewLeadRepo(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

// Create inserts the lead and, when present, its primary contact and that
// contact's emails in one transaction. A failure at any point rolls back
// every row, so a partially created lead is never visible.
func (r *LeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("leadRepo.Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if c := l.PrimaryContact; c != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO contacts (id, tenant_id, first_name, last_name, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			c.ID, c.TenantID, c.FirstName, c.LastName, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("leadRepo.Create: insert contact: %w", err)
		}

		for pos, e := range c.Emails {
			_, err = tx.Exec(ctx,
				`INSERT INTO contact_emails (id, contact_id, value, is_primary, position)
				 VALUES ($1, $2, $3, $4, $5)`,
				e.ID, e.ContactID, e.Value, e.IsPrimary, pos,
			)
			if err != nil {
				return fmt.Errorf("leadRepo.Create: insert email: %w", err)
			}
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO leads (id, tenant_id, name, domain, status, priority, company_size, industry, last_contacted, primary_contact_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.TenantID, l.Name, l.Domain, l.Status, l.Priority,
		l.CompanySize, l.Industry, l.LastContacted, l.PrimaryContactID, l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("leadRepo.Create: insert lead: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("leadRepo.Create: commit: %w", err)
	}

	return nil
}

// List returns one page of the tenant's leads ordered by priority descending
// with created_at descending as the tie-breaker, plus the total number of
// rows matching the filter before limit/offset are applied. Count and page
// run in one read-only transaction so they see the same snapshot.
func (r *LeadRepo) List(ctx context.Context, tenantID uuid.UUID, f domain.LeadFilter) ([]*domain.Lead, int, error) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR domain ILIKE $%d)", len(args), len(args)))
	}
	cond := strings.Join(where, " AND ")

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int
	err = tx.QueryRow(ctx, `SELECT count(*) FROM leads WHERE `+cond, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List: count: %w", err)
	}

	pageArgs := append(args, f.Limit, f.Offset)
	rows, err := tx.Query(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE `+cond+
			fmt.Sprintf(` ORDER BY priority DESC, created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2),
		pageArgs...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List: query: %w", err)
	}

	leads, err := scanLeads(rows, "leadRepo.List")
	if err != nil {
		return nil, 0, err
	}

	if err = attachContacts(ctx, tx, leads); err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("leadRepo.List: commit: %w", err)
	}

	return leads, total, nil
}

// UpdateStatus sets the lead's status and recomputes its priority from the
// updated attributes in a single transaction. The row is locked between the
// read and the write, so two concurrent updates of the same lead can never
// compute a priority off a stale status.
func (r *LeadRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.LeadStatus) (*domain.Lead, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("leadRepo.UpdateStatus: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	l, err := scanLead(tx.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE tenant_id = $1 AND id = $2 FOR UPDATE`,
		tenantID, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("leadRepo.UpdateStatus: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("leadRepo.UpdateStatus: %w", err)
	}

	l.Status = status
	l.Priority = domain.CalculatePriority(l, time.Now().UTC())

	_, err = tx.Exec(ctx,
		`UPDATE leads SET status = $1, priority = $2 WHERE tenant_id = $3 AND id = $4`,
		l.Status, l.Priority, tenantID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("leadRepo.UpdateStatus: update: %w", err)
	}

	if err = attachContacts(ctx, tx, []*domain.Lead{l}); err != nil {
		return nil, fmt.Errorf("leadRepo.UpdateStatus: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("leadRepo.UpdateStatus: commit: %w", err)
	}

	return l, nil
}

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var l domain.Lead
	err := row.Scan(
		&l.ID, &l.TenantID, &l.Name, &l.Domain, &l.Status, &l.Priority,
		&l.CompanySize, &l.Industry, &l.LastContacted, &l.PrimaryContactID,
		&l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func scanLeads(rows pgx.Rows, caller string) ([]*domain.Lead, error) {
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return leads, nil
}

// attachContacts resolves each lead's primary contact and its emails. Emails
// come back in the order they were supplied at creation time.
func attachContacts(ctx context.Context, q querier, leads []*domain.Lead) error {
	ids := make([]string, 0, len(leads))
	byID := make(map[uuid.UUID]*domain.Lead, len(leads))
	for _, l := range leads {
		if l.PrimaryContactID != nil {
			ids = append(ids, l.PrimaryContactID.String())
			byID[*l.PrimaryContactID] = l
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := q.Query(ctx,
		`SELECT id, tenant_id, first_name, last_name, created_at
		 FROM contacts WHERE id = ANY($1::uuid[])`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("attachContacts: contacts: %w", err)
	}

	contacts := make(map[uuid.UUID]*domain.Contact, len(ids))
	for rows.Next() {
		var c domain.Contact
		if err = rows.Scan(&c.ID, &c.TenantID, &c.FirstName, &c.LastName, &c.CreatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("attachContacts: scan contact: %w", err)
		}
		c.Emails = []*domain.ContactEmail{}
		contacts[c.ID] = &c
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("attachContacts: contact rows: %w", err)
	}

	rows, err = q.Query(ctx,
		`SELECT id, contact_id, value, is_primary
		 FROM contact_emails WHERE contact_id = ANY($1::uuid[])
		 ORDER BY contact_id, position`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("attachContacts: emails: %w", err)
	}

	for rows.Next() {
		var e domain.ContactEmail
		if err = rows.Scan(&e.ID, &e.ContactID, &e.Value, &e.IsPrimary); err != nil {
			rows.Close()
			return fmt.Errorf("attachContacts: scan email: %w", err)
		}
		if c, ok := contacts[e.ContactID]; ok {
			c.Emails = append(c.Emails, &e)
		}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("attachContacts: email rows: %w", err)
	}

	for id, c := range contacts {
		if l, ok := byID[id]; ok {
			l.PrimaryContact = c
		}
	}

	return nil
}
