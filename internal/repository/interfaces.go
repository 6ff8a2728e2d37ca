package repository

import (
	"context"

	"github.com/remuikids/kidsboard/internal/domain"
)

// CohortRepo lists a user's cohort memberships, most recently joined first,
// then by cohort id.
type CohortRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.CohortMembership, error)
}

// ProfileRepo reads custom profile fields. GetField returns nil when the user
// has no value for the field.
type ProfileRepo interface {
	GetField(ctx context.Context, userID int64, field string) (*string, error)
}

// CompletionRepo returns one fact per completion-tracked activity in the given
// courses. Activities the user never touched come back as not_started.
type CompletionRepo interface {
	ListFacts(ctx context.Context, userID int64, courseIDs []int64) ([]domain.CompletionFact, error)
}

type TenantRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	List(ctx context.Context) ([]*domain.Tenant, error)
	ListMemberships(ctx context.Context, tenantID int64) ([]domain.TenantMembership, error)
}

// RoleRepo lists role shortnames assigned to a user in any context. The result
// may contain duplicates.
type RoleRepo interface {
	ListByUser(ctx context.Context, userID int64) ([]string, error)
}

type EnrolmentRepo interface {
	// ListActiveUsers returns the subset of userIDs with at least one
	// non-suspended enrolment.
	ListActiveUsers(ctx context.Context, userIDs []int64) ([]int64, error)
}

type CourseRepo interface {
	ListEnrolled(ctx context.Context, userID int64) ([]*domain.Course, error)
	ListSections(ctx context.Context, courseIDs []int64) ([]*domain.Section, error)
}

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*domain.User, error)
}

// Store bundles the read repositories a page needs. Both the local SQLite
// store and the Moodle adapter provide one.
type Store struct {
	Cohorts     CohortRepo
	Profiles    ProfileRepo
	Completions CompletionRepo
	Tenants     TenantRepo
	Roles       RoleRepo
	Enrolments  EnrolmentRepo
	Courses     CourseRepo
	Users       UserRepo
}
