package testutil

import (
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/remuikids/kidsboard/internal/domain"
)

var testIDCounter atomic.Int64

// NextID returns a process-unique positive id for fixtures.
func NextID() int64 {
	return testIDCounter.Add(1) + 1000
}

// User options
type UserOption func(*domain.User)

func WithName(first, last string) UserOption {
	return func(u *domain.User) {
		u.FirstName = first
		u.LastName = last
	}
}

func WithSuspended() UserOption {
	return func(u *domain.User) {
		u.Suspended = true
	}
}

func NewTestUser(username string, opts ...UserOption) *domain.User {
	if username == "" {
		username = "user-" + strings.SplitN(uuid.New().String(), "-", 2)[0]
	}
	u := &domain.User{
		ID:       NextID(),
		Username: username,
		Email:    username + "@example.org",
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func NewTestTenant(name string) *domain.Tenant {
	return &domain.Tenant{
		ID:        NextID(),
		Name:      name,
		ShortName: strings.ToLower(strings.ReplaceAll(name, " ", "")),
	}
}

func NewTestCourse(shortName string, tenantID int64) *domain.Course {
	return &domain.Course{
		ID:        NextID(),
		ShortName: shortName,
		FullName:  shortName + " course",
		TenantID:  tenantID,
	}
}

func NewTestSection(courseID int64, number int, name string) *domain.Section {
	return &domain.Section{
		ID:       NextID(),
		CourseID: courseID,
		Number:   number,
		Name:     name,
	}
}

// Activity options
type ActivityOption func(*domain.Activity)

func Untracked() ActivityOption {
	return func(a *domain.Activity) {
		a.Tracked = false
	}
}

func WithModName(mod string) ActivityOption {
	return func(a *domain.Activity) {
		a.ModName = mod
	}
}

func NewTestActivity(section *domain.Section, name string, opts ...ActivityOption) *domain.Activity {
	a := &domain.Activity{
		ID:        NextID(),
		CourseID:  section.CourseID,
		SectionID: section.ID,
		Name:      name,
		ModName:   "page",
		Tracked:   true,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
