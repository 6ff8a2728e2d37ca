package domain

import "fmt"

// GradeBand is a student's school stage plus the specific grade within it.
// The zero value is Unknown.
type GradeBand struct {
	Stage Stage
	Grade int
}

// Unknown is the band returned when no grade can be inferred.
var Unknown = GradeBand{}

func (b GradeBand) IsUnknown() bool {
	return b.Grade == 0 || b.Stage == "" || b.Stage == StageUnknown
}

// String renders the band as Elementary1 ... High12, or Unknown.
func (b GradeBand) String() string {
	if b.IsUnknown() {
		return "Unknown"
	}
	switch b.Stage {
	case StageElementary:
		return fmt.Sprintf("Elementary%d", b.Grade)
	case StageMiddle:
		return fmt.Sprintf("Middle%d", b.Grade)
	case StageHigh:
		return fmt.Sprintf("High%d", b.Grade)
	default:
		return "Unknown"
	}
}
