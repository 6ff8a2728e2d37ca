package app

import "github.com/remuikids/kidsboard/internal/domain"

type TenantStatsRequest struct {
	TenantID   int64
	ActiveOnly bool
	// IncludeApproximate adds the non-manager member count. It is always
	// reported separately from the role-based counts.
	IncludeApproximate bool
}

// TenantStats feeds the school manager dashboard cards. Tenant is nil when
// the tenant does not exist; all counts are then zero.
type TenantStats struct {
	Tenant      *domain.Tenant
	Teachers    int
	Students    int
	Managers    int
	Members     int
	Approximate *int
}

type HeadcountRequest struct {
	TenantID   int64
	Roles      domain.RoleEquivalenceSet
	ActiveOnly bool
}

type HeadcountResult struct {
	Tenant *domain.Tenant
	Roles  domain.RoleEquivalenceSet
	Count  int
}
