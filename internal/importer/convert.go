package importer

import (
	"fmt"
	"time"

	"github.com/remuikids/kidsboard/internal/domain"
)

// ProfileValue is one custom profile field of a user.
type ProfileValue struct {
	UserID int64
	Field  string
	Value  string
}

type Membership struct {
	TenantID    int64
	UserID      int64
	ManagerType int
}

type RoleAssignment struct {
	UserID   int64
	Role     string
	CourseID int64
}

type Cohort struct {
	ID       int64
	Name     string
	IDNumber string
}

type CohortMember struct {
	CohortID int64
	UserID   int64
	Added    time.Time
}

type Completion struct {
	UserID     int64
	ActivityID int64
	State      domain.CompletionState
	Grade      *float64
}

// Batch is a converted snapshot in write order: parents before children.
type Batch struct {
	Tenants       []*domain.Tenant
	Users         []*domain.User
	Profiles      []ProfileValue
	Memberships   []Membership
	Cohorts       []Cohort
	CohortMembers []CohortMember
	Courses       []*domain.Course
	Sections      []*domain.Section
	Activities    []*domain.Activity
	Enrolments    []*domain.Enrolment
	Roles         []RoleAssignment
	Completions   []Completion
}

// Convert turns a validated Snapshot into rows ready for the store. Cohort
// members without an added time get now.
func Convert(snap *Snapshot, now time.Time) (*Batch, error) {
	b := &Batch{}

	for _, t := range snap.Tenants {
		b.Tenants = append(b.Tenants, &domain.Tenant{ID: t.ID, Name: t.Name, ShortName: t.ShortName})
	}

	for _, u := range snap.Users {
		b.Users = append(b.Users, &domain.User{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Suspended: u.Suspended,
		})
		for _, field := range sortedKeys(u.Profile) {
			b.Profiles = append(b.Profiles, ProfileValue{UserID: u.ID, Field: field, Value: u.Profile[field]})
		}
		for _, m := range u.Tenants {
			b.Memberships = append(b.Memberships, Membership{TenantID: m.TenantID, UserID: u.ID, ManagerType: m.ManagerType})
		}
		for _, r := range u.Roles {
			b.Roles = append(b.Roles, RoleAssignment{UserID: u.ID, Role: domain.NormalizeRole(r.Role), CourseID: r.CourseID})
		}
	}

	for _, c := range snap.Cohorts {
		b.Cohorts = append(b.Cohorts, Cohort{ID: c.ID, Name: c.Name, IDNumber: c.IDNumber})
		for _, m := range c.Members {
			added := now.UTC()
			if m.Added != "" {
				t, err := parseAdded(m.Added)
				if err != nil {
					return nil, fmt.Errorf("cohort %d member %d: %w", c.ID, m.UserID, err)
				}
				added = t
			}
			b.CohortMembers = append(b.CohortMembers, CohortMember{CohortID: c.ID, UserID: m.UserID, Added: added})
		}
	}

	for _, c := range snap.Courses {
		b.Courses = append(b.Courses, &domain.Course{ID: c.ID, ShortName: c.ShortName, FullName: c.FullName, TenantID: c.TenantID})
		for _, s := range c.Sections {
			b.Sections = append(b.Sections, &domain.Section{ID: s.ID, CourseID: c.ID, Number: s.Number, Name: s.Name})
			for _, a := range s.Activities {
				tracked := true
				if a.Tracked != nil {
					tracked = *a.Tracked
				}
				b.Activities = append(b.Activities, &domain.Activity{
					ID:        a.ID,
					CourseID:  c.ID,
					SectionID: s.ID,
					Name:      a.Name,
					ModName:   domain.CoalesceStr(a.ModName, "page"),
					Tracked:   tracked,
				})
			}
		}
		for _, e := range c.Enrolments {
			b.Enrolments = append(b.Enrolments, &domain.Enrolment{UserID: e.UserID, CourseID: c.ID, Suspended: e.Suspended})
		}
	}

	for _, c := range snap.Completions {
		b.Completions = append(b.Completions, Completion{
			UserID:     c.UserID,
			ActivityID: c.ActivityID,
			State:      domain.CompletionState(c.State),
			Grade:      c.Grade,
		})
	}

	return b, nil
}
