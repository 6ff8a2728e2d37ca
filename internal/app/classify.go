package app

import "github.com/remuikids/kidsboard/internal/domain"

type ClassifySource string

const (
	SourceNone    ClassifySource = "none"
	SourceProfile ClassifySource = "profile"
	SourceCohort  ClassifySource = "cohort"
)

type ClassifyRequest struct {
	UserID int64
}

type ClassifyResult struct {
	Band    domain.GradeBand
	Variant domain.DashboardVariant
	Source  ClassifySource
	// Matched is the profile value or cohort name that decided the band.
	Matched string
	Cohorts []string
}
