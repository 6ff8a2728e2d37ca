package formatter

import (
	"fmt"
	"strings"

	"github.com/remuikids/kidsboard/internal/app"
)

func FormatClassify(r *app.ClassifyResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", BandBadge(r.Band), Dim("layout: "+string(r.Variant)))
	switch r.Source {
	case app.SourceProfile:
		fmt.Fprintf(&b, "%s %q\n", Dim("from profile field"), r.Matched)
	case app.SourceCohort:
		fmt.Fprintf(&b, "%s %q\n", Dim("from cohort"), r.Matched)
	default:
		b.WriteString(Dim("no grade found in profile or cohorts"))
		b.WriteString("\n")
	}
	if len(r.Cohorts) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("cohorts:"), strings.Join(r.Cohorts, ", "))
	}
	return b.String()
}

func FormatImportResult(r *app.ImportResult) string {
	return fmt.Sprintf("%s %d tenants, %d users, %d cohorts, %d courses, %d activities, %d completions\n",
		StyleGreen.Render("✔ Imported"), r.Tenants, r.Users, r.Cohorts, r.Courses, r.Activities, r.Completions)
}
