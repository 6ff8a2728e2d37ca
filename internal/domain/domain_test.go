package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeBandString(t *testing.T) {
	cases := []struct {
		band GradeBand
		want string
	}{
		{Unknown, "Unknown"},
		{GradeBand{Stage: StageElementary, Grade: 1}, "Elementary1"},
		{GradeBand{Stage: StageMiddle, Grade: 7}, "Middle7"},
		{GradeBand{Stage: StageHigh, Grade: 12}, "High12"},
		{GradeBand{Stage: StageHigh}, "Unknown"},
		{GradeBand{Stage: StageUnknown, Grade: 4}, "Unknown"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.band.String())
	}
}

func TestRoleEquivalenceSet_Normalize(t *testing.T) {
	set := RoleEquivalenceSet{" Teacher", "editingteacher", "TEACHER", "", "manager "}
	assert.Equal(t, RoleEquivalenceSet{"teacher", "editingteacher", "manager"}, set.Normalize())
}

func TestRoleEquivalenceSet_Contains(t *testing.T) {
	assert.True(t, TeacherRoles.Contains("EditingTeacher"))
	assert.True(t, TeacherRoles.Contains(" manager "))
	assert.False(t, TeacherRoles.Contains("student"))
	assert.False(t, TeacherRoles.Contains(""))
	assert.False(t, RoleEquivalenceSet(nil).Contains("teacher"))
}

func TestCompletionStateRank(t *testing.T) {
	assert.Greater(t, CompletionComplete.Rank(), CompletionInProgress.Rank())
	assert.Greater(t, CompletionInProgress.Rank(), CompletionNotStarted.Rank())
	assert.Greater(t, CompletionNotStarted.Rank(), CompletionState("bogus").Rank())
}

func TestKeyFor(t *testing.T) {
	f := CompletionFact{UserID: 9, ActivityID: 3, SectionID: 2, CourseID: 1}
	assert.Equal(t, ScopeKey{CourseID: 1}, KeyFor(f, ScopeCourse))
	assert.Equal(t, ScopeKey{CourseID: 1, SectionID: 2}, KeyFor(f, ScopeSection))
	assert.Equal(t, ScopeKey{CourseID: 1, SectionID: 2, ActivityID: 3}, KeyFor(f, ScopeActivity))
}

func TestSectionDisplayName(t *testing.T) {
	assert.Equal(t, "Fractions", (&Section{Name: "Fractions", Number: 3}).DisplayName())
	assert.Equal(t, "General", (&Section{}).DisplayName())
	assert.Equal(t, "Topic 4", (&Section{Number: 4}).DisplayName())
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&User{FirstName: "Ada", LastName: "Lovelace", Username: "ada"}).FullName())
	assert.Equal(t, "Ada", (&User{FirstName: "Ada", Username: "ada"}).FullName())
	assert.Equal(t, "ada", (&User{Username: "ada"}).FullName())
}

func TestCohortNames_KeepsOrder(t *testing.T) {
	names := CohortNames([]CohortMembership{{CohortName: "Grade 2"}, {CohortName: "Choir"}})
	assert.Equal(t, []string{"Grade 2", "Choir"}, names)
}

func TestKindFromManagerType(t *testing.T) {
	assert.Equal(t, MembershipMember, KindFromManagerType(0))
	assert.Equal(t, MembershipManager, KindFromManagerType(1))
	assert.Equal(t, MembershipManager, KindFromManagerType(4))
	assert.Equal(t, MembershipMember, KindFromManagerType(-1))
}
