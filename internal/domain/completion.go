package domain

import "strconv"

type CompletionFact struct {
	UserID     int64
	ActivityID int64
	SectionID  int64
	CourseID   int64
	State      CompletionState
	Grade      *float64
}

func (f CompletionFact) IsComplete() bool {
	return f.State == CompletionComplete
}

// ScopeKey identifies one progress group. Parts finer than the scope are zero.
type ScopeKey struct {
	CourseID   int64
	SectionID  int64
	ActivityID int64
}

// KeyFor projects a fact onto the grouping key of the given scope.
func KeyFor(f CompletionFact, scope Scope) ScopeKey {
	switch scope {
	case ScopeActivity:
		return ScopeKey{CourseID: f.CourseID, SectionID: f.SectionID, ActivityID: f.ActivityID}
	case ScopeSection:
		return ScopeKey{CourseID: f.CourseID, SectionID: f.SectionID}
	default:
		return ScopeKey{CourseID: f.CourseID}
	}
}

type ProgressSummary struct {
	Scope          Scope
	Key            ScopeKey
	CompletedCount int
	TotalCount     int
	Percentage     int
}

type Course struct {
	ID        int64
	ShortName string
	FullName  string
	TenantID  int64
}

type Section struct {
	ID       int64
	CourseID int64
	Number   int
	Name     string
}

// DisplayName returns the section name or a numbered fallback.
func (s *Section) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if s.Number == 0 {
		return "General"
	}
	return "Topic " + strconv.Itoa(s.Number)
}

type Activity struct {
	ID        int64
	CourseID  int64
	SectionID int64
	Name      string
	ModName   string
	Tracked   bool
}

type Enrolment struct {
	UserID    int64
	CourseID  int64
	Suspended bool
}
