package v1

import (
	"github.com/leadvine/leadvine/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Leads() domain.LeadRepository
}
