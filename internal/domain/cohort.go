package domain

import "time"

type CohortMembership struct {
	UserID     int64
	CohortID   int64
	CohortName string
	TimeAdded  time.Time
}

// CohortNames returns the cohort names of memberships in their given order.
func CohortNames(memberships []CohortMembership) []string {
	names := make([]string, 0, len(memberships))
	for _, m := range memberships {
		names = append(names, m.CohortName)
	}
	return names
}
