package domain

import "time"

// Industries that score as a strong fit. Matching is exact.
var priorityIndustries = map[string]struct{}{
	"Tech":       {},
	"Finance":    {},
	"Healthcare": {},
}

// CalculatePriority maps a lead's attributes to its ranking score. The
// function is pure: deterministic given the lead and now, no side effects.
// Each factor is evaluated independently and absent optional fields
// contribute nothing.
//
// The stored priority is a cached derived value; every mutation path that
// changes one of the input factors must recompute and re-store it.
func CalculatePriority(l *Lead, now time.Time) int {
	score := 0

	switch l.Status {
	case LeadStatusNew:
		score += 10
	case LeadStatusQualified:
		score += 50
	case LeadStatusLost:
		// lost leads score nothing for status
	}

	if l.PrimaryContactID != nil {
		score += 20
	}

	if l.Domain != "" {
		score += 10
	}

	if l.CompanySize != nil {
		switch size := *l.CompanySize; {
		case size >= 200:
			score += 30
		case size >= 50:
			score += 20
		default:
			score += 10
		}
	}

	if _, ok := priorityIndustries[l.Industry]; ok {
		score += 15
	}

	if l.LastContacted != nil {
		switch days := daysSince(*l.LastContacted, now); {
		case days < 7:
			score += 20
		case days < 30:
			score += 10
		}
	}

	return score
}

// daysSince returns the whole-day difference between now and t, floored and
// never negative: a future timestamp counts as zero days ago.
func daysSince(t, now time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
