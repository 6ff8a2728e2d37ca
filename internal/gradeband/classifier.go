package gradeband

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/remuikids/kidsboard/internal/domain"
)

// Band boundaries: the highest grade in each stage. Grades start at MinGrade.
const (
	MinGrade             = 1
	DefaultElementaryMax = 3
	DefaultMiddleMax     = 7
	DefaultHighMax       = 12
)

var gradePattern = regexp.MustCompile(`(?i)\bgrade\s*(\d+)`)

type Boundaries struct {
	ElementaryMax int
	MiddleMax     int
	HighMax       int
}

func DefaultBoundaries() Boundaries {
	return Boundaries{
		ElementaryMax: DefaultElementaryMax,
		MiddleMax:     DefaultMiddleMax,
		HighMax:       DefaultHighMax,
	}
}

// Validate checks MinGrade <= elementary < middle < high <= DefaultHighMax.
func (b Boundaries) Validate() error {
	if b.ElementaryMax < MinGrade {
		return fmt.Errorf("elementary max %d must be at least %d", b.ElementaryMax, MinGrade)
	}
	if b.MiddleMax <= b.ElementaryMax {
		return fmt.Errorf("middle max %d must be greater than elementary max %d", b.MiddleMax, b.ElementaryMax)
	}
	if b.HighMax <= b.MiddleMax {
		return fmt.Errorf("high max %d must be greater than middle max %d", b.HighMax, b.MiddleMax)
	}
	if b.HighMax > DefaultHighMax {
		return fmt.Errorf("high max %d must not exceed %d", b.HighMax, DefaultHighMax)
	}
	return nil
}

// BandFor returns the band containing grade n, or Unknown when n is out of range.
func (b Boundaries) BandFor(n int) domain.GradeBand {
	switch {
	case n < MinGrade || n > b.HighMax:
		return domain.Unknown
	case n <= b.ElementaryMax:
		return domain.GradeBand{Stage: domain.StageElementary, Grade: n}
	case n <= b.MiddleMax:
		return domain.GradeBand{Stage: domain.StageMiddle, Grade: n}
	default:
		return domain.GradeBand{Stage: domain.StageHigh, Grade: n}
	}
}

// Source records which input decided a classification.
type Source string

const (
	SourceNone    Source = "none"
	SourceProfile Source = "profile"
	SourceCohort  Source = "cohort"
)

type Result struct {
	Band   domain.GradeBand
	Source Source
	// Matched is the profile value or cohort name that produced the band.
	Matched string
}

// Classifier maps cohort names and a profile grade field to a grade band.
// It holds only configuration and is safe for concurrent use.
type Classifier struct {
	bounds Boundaries
	policy domain.TieBreakPolicy
}

// New returns a Classifier. Invalid boundaries fall back to the defaults and
// an unrecognised policy falls back to first_listed.
func New(bounds Boundaries, policy domain.TieBreakPolicy) *Classifier {
	if bounds.Validate() != nil {
		bounds = DefaultBoundaries()
	}
	if !domain.ValidTieBreakPolicies[string(policy)] {
		policy = domain.TieBreakFirstListed
	}
	return &Classifier{bounds: bounds, policy: policy}
}

var defaultClassifier = New(DefaultBoundaries(), domain.TieBreakFirstListed)

// Classify uses the default boundaries and the first_listed policy.
func Classify(cohortNames []string, profileGradeField *string) domain.GradeBand {
	return defaultClassifier.Classify(cohortNames, profileGradeField)
}

func (c *Classifier) Boundaries() Boundaries         { return c.bounds }
func (c *Classifier) Policy() domain.TieBreakPolicy { return c.policy }

func (c *Classifier) Classify(cohortNames []string, profileGradeField *string) domain.GradeBand {
	return c.Explain(cohortNames, profileGradeField).Band
}

// Explain classifies and reports which input decided the band.
// A matching profile field always wins over cohort names.
func (c *Classifier) Explain(cohortNames []string, profileGradeField *string) Result {
	if profileGradeField != nil {
		if band := c.bandFromText(*profileGradeField); !band.IsUnknown() {
			return Result{Band: band, Source: SourceProfile, Matched: *profileGradeField}
		}
	}

	best := Result{Band: domain.Unknown, Source: SourceNone}
	for _, name := range cohortNames {
		band := c.bandFromText(name)
		if band.IsUnknown() {
			continue
		}
		if best.Band.IsUnknown() {
			best = Result{Band: band, Source: SourceCohort, Matched: name}
			if c.policy == domain.TieBreakFirstListed {
				return best
			}
			continue
		}
		switch c.policy {
		case domain.TieBreakHighestGrade:
			if band.Grade > best.Band.Grade {
				best = Result{Band: band, Source: SourceCohort, Matched: name}
			}
		case domain.TieBreakLowestGrade:
			if band.Grade < best.Band.Grade {
				best = Result{Band: band, Source: SourceCohort, Matched: name}
			}
		}
	}
	return best
}

// bandFromText returns the band of the first in-range grade mentioned in s.
func (c *Classifier) bandFromText(s string) domain.GradeBand {
	for _, m := range gradePattern.FindAllStringSubmatch(s, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if band := c.bounds.BandFor(n); !band.IsUnknown() {
			return band
		}
	}
	return domain.Unknown
}

// ParseGrade extracts the first grade number in 1..DefaultHighMax mentioned in s.
func ParseGrade(s string) (int, bool) {
	band := defaultClassifier.bandFromText(s)
	if band.IsUnknown() {
		return 0, false
	}
	return band.Grade, true
}

// Variant picks the dashboard layout for a band.
func Variant(band domain.GradeBand) domain.DashboardVariant {
	if band.IsUnknown() {
		return domain.VariantDefault
	}
	switch band.Stage {
	case domain.StageElementary:
		return domain.VariantElementary
	case domain.StageMiddle:
		return domain.VariantMiddle
	case domain.StageHigh:
		return domain.VariantHighSchool
	default:
		return domain.VariantDefault
	}
}
