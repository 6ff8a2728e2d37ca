package domain

type Stage string

const (
	StageUnknown    Stage = "unknown"
	StageElementary Stage = "elementary"
	StageMiddle     Stage = "middle"
	StageHigh       Stage = "high"
)

type CompletionState string

const (
	CompletionNotStarted CompletionState = "not_started"
	CompletionInProgress CompletionState = "in_progress"
	CompletionComplete   CompletionState = "complete"
)

// ValidCompletionStates is the canonical set of accepted completion state strings.
var ValidCompletionStates = map[string]bool{
	"not_started": true, "in_progress": true, "complete": true,
}

// Rank orders completion states from least to most advanced.
// Unrecognised states rank below not_started.
func (s CompletionState) Rank() int {
	switch s {
	case CompletionComplete:
		return 3
	case CompletionInProgress:
		return 2
	case CompletionNotStarted:
		return 1
	default:
		return 0
	}
}

type Scope string

const (
	ScopeActivity Scope = "activity"
	ScopeSection  Scope = "section"
	ScopeCourse   Scope = "course"
)

// ValidScopes is the canonical set of accepted progress scope strings.
var ValidScopes = map[string]bool{
	"activity": true, "section": true, "course": true,
}

type MembershipKind string

const (
	MembershipManager MembershipKind = "manager"
	MembershipMember  MembershipKind = "member"
)

type DashboardVariant string

const (
	VariantDefault    DashboardVariant = "default"
	VariantElementary DashboardVariant = "elementary"
	VariantMiddle     DashboardVariant = "middle"
	VariantHighSchool DashboardVariant = "highschool"
)

type TieBreakPolicy string

const (
	TieBreakFirstListed  TieBreakPolicy = "first_listed"
	TieBreakHighestGrade TieBreakPolicy = "highest_grade"
	TieBreakLowestGrade  TieBreakPolicy = "lowest_grade"
)

// ValidTieBreakPolicies is the canonical set of accepted tie-break policy strings.
var ValidTieBreakPolicies = map[string]bool{
	"first_listed": true, "highest_grade": true, "lowest_grade": true,
}
