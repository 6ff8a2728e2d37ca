package importer

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var importTime = time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC)

func TestConvert_SampleSnapshot(t *testing.T) {
	snap, err := LoadSnapshot(filepath.Join("testdata", "school.yaml"))
	require.NoError(t, err)

	b, err := Convert(snap, importTime)
	require.NoError(t, err)

	assert.Len(t, b.Tenants, 2)
	assert.Len(t, b.Users, 4)
	assert.Len(t, b.Memberships, 4)
	assert.Len(t, b.Cohorts, 2)
	assert.Len(t, b.CohortMembers, 2)
	assert.Len(t, b.Courses, 1)
	assert.Len(t, b.Sections, 2)
	assert.Len(t, b.Activities, 6)
	assert.Len(t, b.Enrolments, 2)
	assert.Len(t, b.Roles, 5)
	assert.Len(t, b.Completions, 5)

	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), b.CohortMembers[0].Added)
	assert.Equal(t, time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC), b.CohortMembers[1].Added)

	assert.Equal(t, []ProfileValue{{UserID: 11, Field: "grade", Value: "Grade 2"}}, b.Profiles)

	var manager Membership
	for _, m := range b.Memberships {
		if m.UserID == 30 {
			manager = m
		}
	}
	assert.Equal(t, 1, manager.ManagerType)
}

func TestConvert_ActivityDefaults(t *testing.T) {
	snap := &Snapshot{Courses: []CourseImport{{
		ID: 1, ShortName: "ART",
		Sections: []SectionImport{{ID: 2, Number: 1, Activities: []ActivityImport{
			{ID: 3, Name: "Page"},
			{ID: 4, Name: "Forum", ModName: "forum", Tracked: ptrBool(false)},
		}}},
	}}}
	b, err := Convert(snap, importTime)
	require.NoError(t, err)
	require.Len(t, b.Activities, 2)

	assert.Equal(t, "page", b.Activities[0].ModName)
	assert.True(t, b.Activities[0].Tracked)
	assert.Equal(t, int64(1), b.Activities[0].CourseID)
	assert.Equal(t, int64(2), b.Activities[0].SectionID)
	assert.False(t, b.Activities[1].Tracked)
}

func TestConvert_MemberWithoutAddedUsesImportTime(t *testing.T) {
	snap := &Snapshot{Cohorts: []CohortImport{{ID: 1, Name: "Grade 5", Members: []CohortMemberImport{{UserID: 7}}}}}
	b, err := Convert(snap, importTime)
	require.NoError(t, err)
	assert.Equal(t, importTime, b.CohortMembers[0].Added)
}

func TestConvert_NormalizesRoles(t *testing.T) {
	snap := &Snapshot{Users: []UserImport{{ID: 1, Username: "t", Roles: []RoleImport{{Role: " EditingTeacher "}}}}}
	b, err := Convert(snap, importTime)
	require.NoError(t, err)
	assert.Equal(t, "editingteacher", b.Roles[0].Role)
}

func TestConvert_CompletionStates(t *testing.T) {
	g := 4.0
	snap := &Snapshot{Completions: []CompletionImport{
		{UserID: 1, ActivityID: 2, State: "in_progress", Grade: &g},
	}}
	b, err := Convert(snap, importTime)
	require.NoError(t, err)
	assert.Equal(t, domain.CompletionInProgress, b.Completions[0].State)
	assert.Equal(t, &g, b.Completions[0].Grade)
}

func TestConvert_BadAddedTime(t *testing.T) {
	snap := &Snapshot{Cohorts: []CohortImport{{ID: 1, Name: "x", Members: []CohortMemberImport{{UserID: 7, Added: "soon"}}}}}
	_, err := Convert(snap, importTime)
	assert.Error(t, err)
}
