package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/leadvine/leadvine/internal/domain"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

// ---------------------------------------------------------------------------
// CalculatePriority — factor table
// ---------------------------------------------------------------------------

func TestCalculatePriority(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	contactID := uuid.New()

	tests := []struct {
		name string
		lead domain.Lead
		want int
	}{
		{
			name: "bare new lead scores status only",
			lead: domain.Lead{Status: domain.LeadStatusNew},
			want: 10,
		},
		{
			name: "bare qualified lead",
			lead: domain.Lead{Status: domain.LeadStatusQualified},
			want: 50,
		},
		{
			name: "bare lost lead scores zero",
			lead: domain.Lead{Status: domain.LeadStatusLost},
			want: 0,
		},
		{
			name: "primary contact adds 20",
			lead: domain.Lead{Status: domain.LeadStatusNew, PrimaryContactID: &contactID},
			want: 30,
		},
		{
			name: "domain adds 10",
			lead: domain.Lead{Status: domain.LeadStatusNew, Domain: "acme.com"},
			want: 20,
		},
		{
			name: "company size under 50",
			lead: domain.Lead{Status: domain.LeadStatusLost, CompanySize: intPtr(49)},
			want: 10,
		},
		{
			name: "company size 50 hits mid band",
			lead: domain.Lead{Status: domain.LeadStatusLost, CompanySize: intPtr(50)},
			want: 20,
		},
		{
			name: "company size 199 stays mid band",
			lead: domain.Lead{Status: domain.LeadStatusLost, CompanySize: intPtr(199)},
			want: 20,
		},
		{
			name: "company size 200 hits top band",
			lead: domain.Lead{Status: domain.LeadStatusLost, CompanySize: intPtr(200)},
			want: 30,
		},
		{
			name: "matching industry adds 15",
			lead: domain.Lead{Status: domain.LeadStatusLost, Industry: "Finance"},
			want: 15,
		},
		{
			name: "industry match is exact",
			lead: domain.Lead{Status: domain.LeadStatusLost, Industry: "finance"},
			want: 0,
		},
		{
			name: "unknown industry scores nothing",
			lead: domain.Lead{Status: domain.LeadStatusLost, Industry: "Logistics"},
			want: 0,
		},
		{
			name: "contacted 3 days ago adds 20",
			lead: domain.Lead{Status: domain.LeadStatusLost, LastContacted: timePtr(now.Add(-3 * 24 * time.Hour))},
			want: 20,
		},
		{
			name: "contacted just under 7 days ago still recent",
			lead: domain.Lead{Status: domain.LeadStatusLost, LastContacted: timePtr(now.Add(-7*24*time.Hour + time.Minute))},
			want: 20,
		},
		{
			name: "contacted exactly 7 days ago drops to 10",
			lead: domain.Lead{Status: domain.LeadStatusLost, LastContacted: timePtr(now.Add(-7 * 24 * time.Hour))},
			want: 10,
		},
		{
			name: "contacted 29 days ago still 10",
			lead: domain.Lead{Status: domain.LeadStatusLost, LastContacted: timePtr(now.Add(-29 * 24 * time.Hour))},
			want: 10,
		},
		{
			name: "contacted 30 days ago scores nothing",
			lead: domain.Lead{Status: domain.LeadStatusLost, LastContacted: timePtr(now.Add(-30 * 24 * time.Hour))},
			want: 0,
		},
		{
			name: "future contact counts as zero days ago",
			lead: domain.Lead{Status: domain.LeadStatusLost, LastContacted: timePtr(now.Add(48 * time.Hour))},
			want: 20,
		},
		{
			name: "new lead with domain, contact, mid size, tech industry",
			lead: domain.Lead{
				Status:           domain.LeadStatusNew,
				Domain:           "acme.com",
				CompanySize:      intPtr(80),
				Industry:         "Tech",
				PrimaryContactID: &contactID,
			},
			want: 75,
		},
		{
			name: "qualified lead, large company, recent contact",
			lead: domain.Lead{
				Status:           domain.LeadStatusQualified,
				Domain:           "globex.io",
				CompanySize:      intPtr(300),
				PrimaryContactID: &contactID,
				LastContacted:    timePtr(now.Add(-3 * 24 * time.Hour)),
			},
			want: 130,
		},
		{
			name: "all factors maxed",
			lead: domain.Lead{
				Status:           domain.LeadStatusQualified,
				Domain:           "globex.io",
				CompanySize:      intPtr(300),
				Industry:         "Healthcare",
				PrimaryContactID: &contactID,
				LastContacted:    timePtr(now.Add(-3 * 24 * time.Hour)),
			},
			want: 145,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := domain.CalculatePriority(&tt.lead, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

// CalculatePriority must be a function of the lead and now alone: calling it
// twice never changes the result, so re-applying a status is a no-op for the
// stored priority.
func TestCalculatePriority_Deterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lead := domain.Lead{
		Status:      domain.LeadStatusQualified,
		Domain:      "acme.com",
		CompanySize: intPtr(120),
		Industry:    "Tech",
	}

	first := domain.CalculatePriority(&lead, now)
	second := domain.CalculatePriority(&lead, now)
	assert.Equal(t, first, second)
}
