package app

import (
	"context"

	"github.com/remuikids/kidsboard/internal/importer"
)

type StudentDashboardUseCase interface {
	StudentDashboard(ctx context.Context, req DashboardRequest) (*StudentDashboard, error)
}

type TenantStatsUseCase interface {
	Stats(ctx context.Context, req TenantStatsRequest) (*TenantStats, error)
	Headcount(ctx context.Context, req HeadcountRequest) (*HeadcountResult, error)
}

type ClassifyUseCase interface {
	ClassifyUser(ctx context.Context, req ClassifyRequest) (*ClassifyResult, error)
}

type ImportResult struct {
	Tenants     int
	Users       int
	Cohorts     int
	Courses     int
	Activities  int
	Completions int
}

type ImportSnapshotUseCase interface {
	ImportSnapshot(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSnapshotFromSchema(ctx context.Context, snap *importer.Snapshot) (*ImportResult, error)
}
