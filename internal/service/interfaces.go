package service

import (
	"github.com/remuikids/kidsboard/internal/app"
)

type DashboardService interface {
	app.StudentDashboardUseCase
}

type TenantStatsService interface {
	app.TenantStatsUseCase
}

type ClassifyService interface {
	app.ClassifyUseCase
}

type ImportService interface {
	app.ImportSnapshotUseCase
}
