package importer

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrBool(b bool) *bool { return &b }

func validMinimalSnapshot() *Snapshot {
	return &Snapshot{
		Tenants: []TenantImport{{ID: 1, Name: "Hillside"}},
		Users: []UserImport{
			{ID: 10, Username: "maya", Tenants: []MembershipImport{{TenantID: 1}}},
		},
	}
}

func errorStrings(errs []error) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

func TestValidateSnapshot_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateSnapshot(validMinimalSnapshot()))
}

func TestValidateSnapshot_SampleFileIsValid(t *testing.T) {
	snap, err := LoadSnapshot(filepath.Join("testdata", "school.yaml"))
	require.NoError(t, err)
	assert.Empty(t, ValidateSnapshot(snap))
}

func TestValidateSnapshot_EmptyIsValid(t *testing.T) {
	assert.Empty(t, ValidateSnapshot(&Snapshot{}))
}

func TestValidateSnapshot_FieldRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *Snapshot)
		want   string
	}{
		{"tenant id", func(s *Snapshot) { s.Tenants[0].ID = 0 }, "tenants[0].id: must be greater than 0"},
		{"tenant name blank", func(s *Snapshot) { s.Tenants[0].Name = "   " }, "tenants[0].name: must not be blank"},
		{"username blank", func(s *Snapshot) { s.Users[0].Username = "" }, "users[0].username: must not be blank"},
		{"email", func(s *Snapshot) { s.Users[0].Email = "not-an-email" }, `users[0].email: invalid email "not-an-email"`},
		{"manager type", func(s *Snapshot) { s.Users[0].Tenants[0].ManagerType = -1 }, "users[0].tenants[0].manager_type: must be at least 0"},
		{"role blank", func(s *Snapshot) { s.Users[0].Roles = []RoleImport{{Role: ""}} }, "users[0].roles[0].role: must not be blank"},
		{"completion state", func(s *Snapshot) {
			s.Courses = []CourseImport{{ID: 1, ShortName: "C", Sections: []SectionImport{{ID: 1, Activities: []ActivityImport{{ID: 1, Name: "A"}}}}}}
			s.Completions = []CompletionImport{{UserID: 10, ActivityID: 1, State: "finished"}}
		}, `completions[0].state: invalid value "finished"`},
		{"section number", func(s *Snapshot) {
			s.Courses = []CourseImport{{ID: 1, ShortName: "C", Sections: []SectionImport{{ID: 1, Number: -2}}}}
		}, "courses[0].sections[0].number: must be at least 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := validMinimalSnapshot()
			tc.mutate(snap)
			errs := ValidateSnapshot(snap)
			require.NotEmpty(t, errs)
			assert.Contains(t, errorStrings(errs), tc.want)
		})
	}
}

func TestValidateSnapshot_References(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Tenants = append(snap.Tenants, TenantImport{ID: 1, Name: "Dup"})
	snap.Users = append(snap.Users,
		UserImport{ID: 10, Username: "MAYA"},
		UserImport{ID: 11, Username: "leo", Tenants: []MembershipImport{{TenantID: 9}}, Roles: []RoleImport{{Role: "student", CourseID: 77}}},
	)
	snap.Cohorts = []CohortImport{
		{ID: 1, Name: "Grade 3", Members: []CohortMemberImport{{UserID: 99}, {UserID: 10, Added: "yesterday"}}},
	}
	snap.Courses = []CourseImport{
		{ID: 5, ShortName: "MATH", TenantID: 8, Enrolments: []EnrolmentImport{{UserID: 42}},
			Sections: []SectionImport{{ID: 50, Activities: []ActivityImport{{ID: 500, Name: "A"}, {ID: 500, Name: "B"}}}}},
	}
	snap.Completions = []CompletionImport{
		{UserID: 10, ActivityID: 500, State: "complete"},
		{UserID: 10, ActivityID: 500, State: "complete"},
		{UserID: 10, ActivityID: 501, State: "complete"},
	}

	got := errorStrings(ValidateSnapshot(snap))
	for _, want := range []string{
		"tenants[1]: duplicate id 1",
		"users[1]: duplicate id 10",
		`users[1]: duplicate username "MAYA"`,
		"users[2].tenants[0]: unknown tenant 9",
		"users[2].roles[0]: unknown course 77",
		"cohorts[0].members[0]: unknown user 99",
		"cohorts[0].members[1].added: invalid time",
		"courses[0]: unknown tenant 8",
		"courses[0].enrolments[0]: unknown user 42",
		"courses[0].sections[0].activities[1]: duplicate id 500",
		"completions[1]: duplicate completion for user 10 activity 500",
		"completions[2]: unknown activity 501",
	} {
		assert.Contains(t, got, want)
	}
}

func TestValidateSnapshot_UntrackedFlagAccepted(t *testing.T) {
	snap := validMinimalSnapshot()
	snap.Courses = []CourseImport{{ID: 1, ShortName: "ART", Sections: []SectionImport{{ID: 2,
		Activities: []ActivityImport{{ID: 3, Name: "Forum", Tracked: ptrBool(false)}}}}}}
	assert.Empty(t, ValidateSnapshot(snap))
}
