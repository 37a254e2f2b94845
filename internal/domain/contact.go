package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrDuplicateEmail = fmt.Errorf("contact: duplicate email: %w", ErrInvalidInput)

type Contact struct {
	ID        uuid.UUID       `json:"id"`
	TenantID  uuid.UUID       `json:"tenant_id"`
	FirstName string          `json:"first_name,omitempty"`
	LastName  string          `json:"last_name,omitempty"`
	Emails    []*ContactEmail `json:"emails"`
	CreatedAt time.Time       `json:"created_at"`
}

type ContactEmail struct {
	ID        uuid.UUID `json:"id"`
	ContactID uuid.UUID `json:"-"`
	Value     string    `json:"value"`
	IsPrimary bool      `json:"is_primary"`
}

// EmailSeed is one email as supplied by the caller, in input order.
type EmailSeed struct {
	Value     string
	IsPrimary bool
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Used for comparison only; stored values keep their original casing.
func NormalizeEmail(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// NewContact builds a contact with its email set, enforcing the per-contact
// email invariants: no two emails may compare equal after trimming and
// lowercasing, and when the contact has at least one email exactly one is
// primary. If no seed is flagged primary the first one is promoted; if more
// than one is flagged, the first flagged seed wins and the rest are demoted.
func NewContact(tenantID uuid.UUID, firstName, lastName string, emails []EmailSeed) (*Contact, error) {
	c := &Contact{
		ID:        uuid.New(),
		TenantID:  tenantID,
		FirstName: firstName,
		LastName:  lastName,
		Emails:    make([]*ContactEmail, 0, len(emails)),
		CreatedAt: time.Now().UTC(),
	}

	seen := make(map[string]struct{}, len(emails))
	primarySet := false

	for _, seed := range emails {
		normalized := NormalizeEmail(seed.Value)
		if normalized == "" {
			return nil, fmt.Errorf("contact: empty email value: %w", ErrInvalidInput)
		}
		if _, dup := seen[normalized]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, normalized)
		}
		seen[normalized] = struct{}{}

		isPrimary := seed.IsPrimary && !primarySet
		if isPrimary {
			primarySet = true
		}

		c.Emails = append(c.Emails, &ContactEmail{
			ID:        uuid.New(),
			ContactID: c.ID,
			Value:     strings.TrimSpace(seed.Value),
			IsPrimary: isPrimary,
		})
	}

	if len(c.Emails) > 0 && !primarySet {
		c.Emails[0].IsPrimary = true
	}

	return c, nil
}

// PrimaryEmail returns the contact's primary email, or nil when the contact
// has no emails.
func (c *Contact) PrimaryEmail() *ContactEmail {
	for _, e := range c.Emails {
		if e.IsPrimary {
			return e
		}
	}
	return nil
}
