package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/remuikids/kidsboard/internal/db"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokenTableUoW_FailsOnlyTheNamedTable(t *testing.T) {
	ts := NewTestStore(t)
	ctx := context.Background()
	kid := ts.School.User("kid")
	course := ts.School.Course("MATH3", nil)

	broken := &BrokenTableUoW{DB: ts.DB, Table: "role_assignments", Err: errors.New("no roles today")}
	err := broken.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		w := repository.NewSQLiteWriter(tx)
		if err := w.UpsertEnrolment(ctx, &domain.Enrolment{UserID: kid.ID, CourseID: course.ID}); err != nil {
			return err
		}
		return w.AssignRole(ctx, kid.ID, "student", course.ID)
	})
	require.ErrorIs(t, err, broken.Err)
	assert.Equal(t, []string{"enrolments"}, broken.Written)
	assert.Equal(t, 1, broken.WrittenTo("enrolments"))

	active, err := ts.Repos.Enrolments.ListActiveUsers(ctx, []int64{kid.ID})
	require.NoError(t, err)
	assert.Empty(t, active, "enrolment must be rolled back")
}
