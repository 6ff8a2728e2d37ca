package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/domain"
)

const barWidth = 20

func courseLabel(c *domain.Course) string {
	if c == nil {
		return "?"
	}
	if c.FullName != "" && c.FullName != c.ShortName {
		return fmt.Sprintf("%s %s", c.ShortName, Dim(c.FullName))
	}
	return c.ShortName
}

// FormatStudentDashboard renders the student landing page: identity and
// band, overall progress, then one table of course and section progress.
func FormatStudentDashboard(d *app.StudentDashboard) string {
	var b strings.Builder

	name := "unknown user"
	if d.User != nil {
		name = d.User.FullName()
	}
	b.WriteString(Header("Dashboard"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s  %s\n\n", Bold(name), BandBadge(d.Band), Dim("layout: "+string(d.Variant)))
	fmt.Fprintf(&b, "Overall  %s  %s\n\n", RenderProgress(d.Overall.Percentage, barWidth),
		Dim(Fraction(d.Overall.CompletedCount, d.Overall.TotalCount)+" activities"))

	if len(d.Courses) == 0 {
		b.WriteString(Dim("No enrolled courses."))
		b.WriteString("\n")
	} else {
		b.WriteString(FormatCourseProgress(d.Courses, true))
	}

	if len(d.Activities) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatActivityProgress(d.Activities))
	}

	for _, w := range d.Warnings {
		b.WriteString("\n")
		b.WriteString(Warning(w))
	}
	if len(d.Warnings) > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// FormatCourseProgress renders course rows, each followed by its sections
// when withSections is set.
func FormatCourseProgress(courses []app.CourseProgressView, withSections bool) string {
	headers := []string{"COURSE", "PROGRESS", "DONE", "%"}
	var rows [][]string
	for _, c := range courses {
		rows = append(rows, []string{
			courseLabel(c.Course),
			RenderCompactBar(c.Summary.Percentage, barWidth, c.Summary.TotalCount == 0),
			Fraction(c.Summary.CompletedCount, c.Summary.TotalCount),
			PercentStyle(c.Summary.Percentage).Render(fmt.Sprintf("%d%%", c.Summary.Percentage)),
		})
		if !withSections {
			continue
		}
		for _, s := range c.Sections {
			rows = append(rows, []string{
				"  " + Dim("└ ") + s.Section.DisplayName(),
				RenderCompactBar(s.Summary.Percentage, barWidth, true),
				Dim(Fraction(s.Summary.CompletedCount, s.Summary.TotalCount)),
				Dim(fmt.Sprintf("%d%%", s.Summary.Percentage)),
			})
		}
	}
	return RenderTable(headers, rows)
}

// FormatActivityProgress lists activity-scope summaries ordered by course,
// section and activity id.
func FormatActivityProgress(m map[domain.ScopeKey]domain.ProgressSummary) string {
	keys := make([]domain.ScopeKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		if a.SectionID != b.SectionID {
			return a.SectionID < b.SectionID
		}
		return a.ActivityID < b.ActivityID
	})

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		s := m[k]
		rows = append(rows, []string{
			fmt.Sprint(k.CourseID),
			fmt.Sprint(k.SectionID),
			fmt.Sprint(k.ActivityID),
			Fraction(s.CompletedCount, s.TotalCount),
			PercentStyle(s.Percentage).Render(fmt.Sprintf("%d%%", s.Percentage)),
		})
	}
	return RenderTable([]string{"COURSE", "SECTION", "ACTIVITY", "DONE", "%"}, rows)
}
