package progress

import (
	"sort"

	"github.com/remuikids/kidsboard/internal/domain"
)

// Percentage returns round_half_up(100*completed/total), clamped to [0, 100].
// A zero or negative total yields 0.
func Percentage(completed, total int) int {
	if total <= 0 || completed <= 0 {
		return 0
	}
	if completed >= total {
		return 100
	}
	// Integer form of floor(100*c/t + 0.5).
	return (200*completed + total) / (2 * total)
}

type factKey struct {
	userID     int64
	activityID int64
}

// Dedupe collapses facts sharing (UserID, ActivityID). The survivor keeps the
// position of the first occurrence, the most advanced state and the first
// non-nil grade.
func Dedupe(facts []domain.CompletionFact) []domain.CompletionFact {
	out := make([]domain.CompletionFact, 0, len(facts))
	index := make(map[factKey]int, len(facts))
	for _, f := range facts {
		k := factKey{userID: f.UserID, activityID: f.ActivityID}
		i, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, f)
			continue
		}
		if f.State.Rank() > out[i].State.Rank() {
			out[i].State = f.State
		}
		if out[i].Grade == nil && f.Grade != nil {
			out[i].Grade = f.Grade
		}
	}
	return out
}

// Summarize groups facts by scope and counts completions per group.
// Course totals are weighted by activity, not by section.
func Summarize(facts []domain.CompletionFact, scope domain.Scope) map[domain.ScopeKey]domain.ProgressSummary {
	if !domain.ValidScopes[string(scope)] {
		scope = domain.ScopeCourse
	}
	result := make(map[domain.ScopeKey]domain.ProgressSummary)
	for _, f := range Dedupe(facts) {
		key := domain.KeyFor(f, scope)
		s := result[key]
		s.Scope = scope
		s.Key = key
		s.TotalCount++
		if f.IsComplete() {
			s.CompletedCount++
		}
		result[key] = s
	}
	for key, s := range result {
		s.Percentage = Percentage(s.CompletedCount, s.TotalCount)
		result[key] = s
	}
	return result
}

// Lookup returns the summary for key, or a zero summary for a scope with no facts.
func Lookup(m map[domain.ScopeKey]domain.ProgressSummary, scope domain.Scope, key domain.ScopeKey) domain.ProgressSummary {
	if s, ok := m[key]; ok {
		return s
	}
	return domain.ProgressSummary{Scope: scope, Key: key}
}

// Overall summarises every fact as one group, regardless of course.
func Overall(facts []domain.CompletionFact) domain.ProgressSummary {
	s := domain.ProgressSummary{Scope: domain.ScopeCourse}
	for _, f := range Dedupe(facts) {
		s.TotalCount++
		if f.IsComplete() {
			s.CompletedCount++
		}
	}
	s.Percentage = Percentage(s.CompletedCount, s.TotalCount)
	return s
}

// Anomalies counts upstream data problems seen in a fact list.
type Anomalies struct {
	// Duplicates is the number of facts dropped by Dedupe.
	Duplicates int
	// Conflicts counts duplicate groups whose states disagree.
	Conflicts int
}

func (a Anomalies) Any() bool {
	return a.Duplicates > 0 || a.Conflicts > 0
}

func Inspect(facts []domain.CompletionFact) Anomalies {
	states := make(map[factKey]domain.CompletionState, len(facts))
	conflicted := make(map[factKey]bool)
	var a Anomalies
	for _, f := range facts {
		k := factKey{userID: f.UserID, activityID: f.ActivityID}
		prev, seen := states[k]
		if !seen {
			states[k] = f.State
			continue
		}
		a.Duplicates++
		if prev != f.State && !conflicted[k] {
			conflicted[k] = true
			a.Conflicts++
		}
	}
	return a
}

type SectionProgress struct {
	SectionID int64
	Summary   domain.ProgressSummary
}

type CourseProgress struct {
	CourseID int64
	Summary  domain.ProgressSummary
	Sections []SectionProgress
}

// Rollup builds the course -> section tree. Courses and sections are ordered by id.
func Rollup(facts []domain.CompletionFact) []CourseProgress {
	deduped := Dedupe(facts)
	courses := Summarize(deduped, domain.ScopeCourse)
	sections := Summarize(deduped, domain.ScopeSection)

	byCourse := make(map[int64][]SectionProgress, len(courses))
	for key, s := range sections {
		byCourse[key.CourseID] = append(byCourse[key.CourseID], SectionProgress{SectionID: key.SectionID, Summary: s})
	}

	out := make([]CourseProgress, 0, len(courses))
	for key, s := range courses {
		secs := byCourse[key.CourseID]
		sort.Slice(secs, func(i, j int) bool { return secs[i].SectionID < secs[j].SectionID })
		out = append(out, CourseProgress{CourseID: key.CourseID, Summary: s, Sections: secs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out
}
