package service

import (
	"context"
	"fmt"
	"time"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/importer"
	"github.com/remuikids/kidsboard/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	now      func() time.Time
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportSnapshot(ctx context.Context, filePath string) (*app.ImportResult, error) {
	snap, err := importer.LoadSnapshot(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot file: %w", err)
	}
	return s.importSnapshot(ctx, snap, filePath)
}

func (s *importService) ImportSnapshotFromSchema(ctx context.Context, snap *importer.Snapshot) (*app.ImportResult, error) {
	return s.importSnapshot(ctx, snap, "")
}

func (s *importService) importSnapshot(ctx context.Context, snap *importer.Snapshot, source string) (res *app.ImportResult, err error) {
	run := startUseCase(ctx, s.observer, "import-snapshot", map[string]any{"source": source})
	defer func() { run.done(ctx, err) }()

	if errs := importer.ValidateSnapshot(snap); len(errs) > 0 {
		run.set("validation_errors", len(errs))
		return nil, formatValidationErrors(errs)
	}

	batch, err := importer.Convert(snap, s.now())
	if err != nil {
		return nil, fmt.Errorf("converting snapshot: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return writeBatch(ctx, repository.NewSQLiteWriter(tx), batch)
	})
	if err != nil {
		return nil, err
	}

	res = &app.ImportResult{
		Tenants:     len(batch.Tenants),
		Users:       len(batch.Users),
		Cohorts:     len(batch.Cohorts),
		Courses:     len(batch.Courses),
		Activities:  len(batch.Activities),
		Completions: len(batch.Completions),
	}
	run.set("users", res.Users)
	run.set("completions", res.Completions)
	return res, nil
}

// writeBatch persists parents before children so foreign keys hold.
func writeBatch(ctx context.Context, w *repository.SQLiteWriter, b *importer.Batch) error {
	for _, t := range b.Tenants {
		if err := w.UpsertTenant(ctx, t); err != nil {
			return err
		}
	}
	for _, u := range b.Users {
		if err := w.UpsertUser(ctx, u); err != nil {
			return err
		}
	}
	for _, p := range b.Profiles {
		if err := w.SetProfileField(ctx, p.UserID, p.Field, p.Value); err != nil {
			return err
		}
	}
	for _, m := range b.Memberships {
		if err := w.AddTenantUser(ctx, m.TenantID, m.UserID, m.ManagerType); err != nil {
			return err
		}
	}
	for _, c := range b.Cohorts {
		if err := w.UpsertCohort(ctx, c.ID, c.Name, c.IDNumber); err != nil {
			return err
		}
	}
	for _, m := range b.CohortMembers {
		if err := w.AddCohortMember(ctx, m.CohortID, m.UserID, m.Added); err != nil {
			return err
		}
	}
	for _, c := range b.Courses {
		if err := w.UpsertCourse(ctx, c); err != nil {
			return err
		}
	}
	for _, sec := range b.Sections {
		if err := w.UpsertSection(ctx, sec); err != nil {
			return err
		}
	}
	for _, a := range b.Activities {
		if err := w.UpsertActivity(ctx, a); err != nil {
			return err
		}
	}
	for _, e := range b.Enrolments {
		if err := w.UpsertEnrolment(ctx, e); err != nil {
			return err
		}
	}
	for _, r := range b.Roles {
		if err := w.AssignRole(ctx, r.UserID, r.Role, r.CourseID); err != nil {
			return err
		}
	}
	for _, c := range b.Completions {
		if err := w.RecordCompletion(ctx, c.UserID, c.ActivityID, c.State, c.Grade); err != nil {
			return err
		}
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("snapshot validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
