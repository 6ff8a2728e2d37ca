package headcount

import (
	"github.com/remuikids/kidsboard/internal/domain"
)

// Roster is a per-request snapshot of tenant memberships, role assignments
// and active enrolments.
type Roster struct {
	Memberships      []domain.TenantMembership
	Roles            map[int64][]string
	ActiveEnrolments map[int64]bool
}

// members returns the distinct users of tenantID with their membership kind.
// A user listed as both manager and member counts as manager.
func (r Roster) members(tenantID int64) map[int64]domain.MembershipKind {
	out := make(map[int64]domain.MembershipKind)
	for _, m := range r.Memberships {
		if m.TenantID != tenantID {
			continue
		}
		if prev, ok := out[m.UserID]; ok && prev == domain.MembershipManager {
			continue
		}
		out[m.UserID] = m.Kind
	}
	return out
}

func (r Roster) eligible(userID int64, activeOnly bool) bool {
	return !activeOnly || r.ActiveEnrolments[userID]
}

func (r Roster) holdsAny(userID int64, set domain.RoleEquivalenceSet) bool {
	for _, role := range r.Roles[userID] {
		if set.Contains(role) {
			return true
		}
	}
	return false
}

// MemberIDs lists the distinct user ids of a tenant in first-seen order.
func (r Roster) MemberIDs(tenantID int64) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, m := range r.Memberships {
		if m.TenantID != tenantID || seen[m.UserID] {
			continue
		}
		seen[m.UserID] = true
		ids = append(ids, m.UserID)
	}
	return ids
}

// CountDistinctUsers counts tenant members holding at least one role in the set.
// A user holding several matching roles is counted once.
func CountDistinctUsers(r Roster, tenantID int64, roles domain.RoleEquivalenceSet, activeOnly bool) int {
	set := roles.Normalize()
	if len(set) == 0 {
		return 0
	}
	count := 0
	for userID := range r.members(tenantID) {
		if r.eligible(userID, activeOnly) && r.holdsAny(userID, set) {
			count++
		}
	}
	return count
}

// ApproximateHeadcount counts non-manager members of the tenant without looking
// at role assignments. Callers must label it as an approximation.
func ApproximateHeadcount(r Roster, tenantID int64, activeOnly bool) int {
	count := 0
	for userID, kind := range r.members(tenantID) {
		if kind == domain.MembershipManager {
			continue
		}
		if r.eligible(userID, activeOnly) {
			count++
		}
	}
	return count
}

// Breakdown runs CountDistinctUsers for every named set in one pass over the tenant.
func Breakdown(r Roster, tenantID int64, sets map[string]domain.RoleEquivalenceSet, activeOnly bool) map[string]int {
	normalized := make(map[string]domain.RoleEquivalenceSet, len(sets))
	out := make(map[string]int, len(sets))
	for name, set := range sets {
		normalized[name] = set.Normalize()
		out[name] = 0
	}
	for userID := range r.members(tenantID) {
		if !r.eligible(userID, activeOnly) {
			continue
		}
		for name, set := range normalized {
			if len(set) > 0 && r.holdsAny(userID, set) {
				out[name]++
			}
		}
	}
	return out
}
