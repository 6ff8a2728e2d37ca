package service

import (
	"context"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/gradeband"
	"github.com/remuikids/kidsboard/internal/repository"
)

type classifyService struct {
	store    repository.Store
	settings Settings
	observer UseCaseObserver
}

func NewClassifyService(store repository.Store, settings Settings, observers ...UseCaseObserver) ClassifyService {
	return &classifyService{
		store:    store,
		settings: settings.withDefaults(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *classifyService) ClassifyUser(ctx context.Context, req app.ClassifyRequest) (res *app.ClassifyResult, err error) {
	run := startUseCase(ctx, s.observer, "classify-user", map[string]any{"user_id": req.UserID})
	defer func() { run.done(ctx, err) }()

	if _, err = loadUser(ctx, s.store.Users, req.UserID); err != nil {
		return nil, err
	}

	explained, names, err := classifyUser(ctx, s.store, s.settings, req.UserID)
	if err != nil {
		return nil, err
	}
	run.set("band", explained.Band.String())
	run.set("source", string(explained.Source))

	return ClassifyResultFrom(explained, names), nil
}

// ClassifyResultFrom describes a classifier decision over the given cohort names.
func ClassifyResultFrom(explained gradeband.Result, cohorts []string) *app.ClassifyResult {
	res := &app.ClassifyResult{
		Band:    explained.Band,
		Variant: gradeband.Variant(explained.Band),
		Source:  app.SourceNone,
		Matched: explained.Matched,
		Cohorts: cohorts,
	}
	switch explained.Source {
	case gradeband.SourceProfile:
		res.Source = app.SourceProfile
	case gradeband.SourceCohort:
		res.Source = app.SourceCohort
	}
	return res
}
