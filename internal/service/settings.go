package service

import (
	"log/slog"

	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/gradeband"
)

// DefaultProfileField is the custom profile field holding a student's grade.
const DefaultProfileField = "grade"

// RoleSets are the role-equivalence sets behind the manager dashboard cards.
type RoleSets struct {
	Teacher domain.RoleEquivalenceSet
	Student domain.RoleEquivalenceSet
	Manager domain.RoleEquivalenceSet
}

func DefaultRoleSets() RoleSets {
	return RoleSets{
		Teacher: domain.TeacherRoles,
		Student: domain.StudentRoles,
		Manager: domain.ManagerRoles,
	}
}

func (r RoleSets) named() map[string]domain.RoleEquivalenceSet {
	return map[string]domain.RoleEquivalenceSet{
		"teachers": r.Teacher,
		"students": r.Student,
		"managers": r.Manager,
	}
}

// Settings carries the tunables shared by the page services.
type Settings struct {
	Classifier   *gradeband.Classifier
	ProfileField string
	Roles        RoleSets
	// Logger receives debug output such as upstream data anomalies.
	Logger *slog.Logger
}

func DefaultSettings() Settings {
	return Settings{
		Classifier:   gradeband.New(gradeband.DefaultBoundaries(), domain.TieBreakFirstListed),
		ProfileField: DefaultProfileField,
		Roles:        DefaultRoleSets(),
		Logger:       slog.New(slog.DiscardHandler),
	}
}

// withDefaults fills unset fields from DefaultSettings.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Classifier == nil {
		s.Classifier = d.Classifier
	}
	s.ProfileField = domain.CoalesceStr(s.ProfileField, d.ProfileField)
	if len(s.Roles.Teacher) == 0 {
		s.Roles.Teacher = d.Roles.Teacher
	}
	if len(s.Roles.Student) == 0 {
		s.Roles.Student = d.Roles.Student
	}
	if len(s.Roles.Manager) == 0 {
		s.Roles.Manager = d.Roles.Manager
	}
	if s.Logger == nil {
		s.Logger = d.Logger
	}
	return s
}
