package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/headcount"
	"github.com/remuikids/kidsboard/internal/repository"
)

type tenantStatsService struct {
	store    repository.Store
	settings Settings
	observer UseCaseObserver
}

func NewTenantStatsService(store repository.Store, settings Settings, observers ...UseCaseObserver) TenantStatsService {
	return &tenantStatsService{
		store:    store,
		settings: settings.withDefaults(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *tenantStatsService) Stats(ctx context.Context, req app.TenantStatsRequest) (stats *app.TenantStats, err error) {
	run := startUseCase(ctx, s.observer, "tenant-stats", map[string]any{
		"tenant_id":   req.TenantID,
		"active_only": req.ActiveOnly,
	})
	defer func() { run.done(ctx, err) }()

	tenant, err := s.loadTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	stats = &app.TenantStats{Tenant: tenant}
	if req.IncludeApproximate {
		stats.Approximate = new(int)
	}
	if tenant == nil {
		run.set("tenant_found", false)
		return stats, nil
	}

	roster, err := s.loadRoster(ctx, tenant.ID, req.ActiveOnly)
	if err != nil {
		return nil, err
	}

	counts := headcount.Breakdown(roster, tenant.ID, s.settings.Roles.named(), req.ActiveOnly)
	stats.Teachers = counts["teachers"]
	stats.Students = counts["students"]
	stats.Managers = counts["managers"]
	stats.Members = len(roster.MemberIDs(tenant.ID))
	if req.IncludeApproximate {
		n := headcount.ApproximateHeadcount(roster, tenant.ID, req.ActiveOnly)
		stats.Approximate = &n
	}
	run.set("members", stats.Members)
	return stats, nil
}

func (s *tenantStatsService) Headcount(ctx context.Context, req app.HeadcountRequest) (res *app.HeadcountResult, err error) {
	roles := req.Roles.Normalize()
	run := startUseCase(ctx, s.observer, "tenant-headcount", map[string]any{
		"tenant_id": req.TenantID,
		"roles":     []string(roles),
	})
	defer func() { run.done(ctx, err) }()

	tenant, err := s.loadTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	res = &app.HeadcountResult{Tenant: tenant, Roles: roles}
	if tenant == nil {
		return res, nil
	}

	roster, err := s.loadRoster(ctx, tenant.ID, req.ActiveOnly)
	if err != nil {
		return nil, err
	}
	res.Count = headcount.CountDistinctUsers(roster, tenant.ID, roles, req.ActiveOnly)
	run.set("count", res.Count)
	return res, nil
}

// loadTenant returns nil without error for a tenant that does not exist.
func (s *tenantStatsService) loadTenant(ctx context.Context, tenantID int64) (*domain.Tenant, error) {
	if tenantID <= 0 {
		return nil, &app.RequestError{Code: app.ErrInvalidTenant, Message: "tenant id is required"}
	}
	tenant, err := s.store.Tenants.GetByID(ctx, tenantID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading tenant: %w", err)
	}
	return tenant, nil
}

// loadRoster snapshots memberships, role assignments and, when needed,
// active enrolments for one tenant.
func (s *tenantStatsService) loadRoster(ctx context.Context, tenantID int64, activeOnly bool) (headcount.Roster, error) {
	memberships, err := s.store.Tenants.ListMemberships(ctx, tenantID)
	if err != nil {
		return headcount.Roster{}, fmt.Errorf("loading tenant memberships: %w", err)
	}
	roster := headcount.Roster{
		Memberships: memberships,
		Roles:       make(map[int64][]string),
	}

	memberIDs := roster.MemberIDs(tenantID)
	for _, userID := range memberIDs {
		roles, err := s.store.Roles.ListByUser(ctx, userID)
		if err != nil {
			return headcount.Roster{}, fmt.Errorf("loading roles for user %d: %w", userID, err)
		}
		roster.Roles[userID] = roles
	}

	if activeOnly && len(memberIDs) > 0 {
		active, err := s.store.Enrolments.ListActiveUsers(ctx, memberIDs)
		if err != nil {
			return headcount.Roster{}, fmt.Errorf("loading active enrolments: %w", err)
		}
		roster.ActiveEnrolments = make(map[int64]bool, len(active))
		for _, id := range active {
			roster.ActiveEnrolments[id] = true
		}
	}
	return roster, nil
}
