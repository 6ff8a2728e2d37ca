package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/cli/formatter"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/spf13/cobra"
)

func newProgressCmd(a *App) *cobra.Command {
	var (
		userID    int64
		courseIDs []int64
		scope     = domain.ScopeSection
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show a student's completion progress",
		Example: `  kidsboard progress --user 10
  kidsboard progress --user 10 --course 100 --scope activity`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return errors.New("--user is required")
			}
			dash, err := a.Dashboard.StudentDashboard(cmd.Context(), app.DashboardRequest{
				UserID:    userID,
				CourseIDs: courseIDs,
				Scope:     scope,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatProgress(dash, scope))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Student user id")
	cmd.Flags().Int64SliceVar(&courseIDs, "course", nil, "Limit to these enrolled course ids")
	cmd.Flags().Var(newScopeValue(&scope), "scope", "Grouping: course, section or activity")

	return cmd
}

func formatProgress(d *app.StudentDashboard, scope domain.Scope) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Overall  %s  %s\n\n",
		formatter.RenderProgress(d.Overall.Percentage, 20),
		formatter.Dim(formatter.Fraction(d.Overall.CompletedCount, d.Overall.TotalCount)))
	if len(d.Courses) == 0 {
		b.WriteString(formatter.Dim("No enrolled courses."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(formatter.FormatCourseProgress(d.Courses, scope != domain.ScopeCourse))
	if scope == domain.ScopeActivity && len(d.Activities) > 0 {
		b.WriteString("\n")
		b.WriteString(formatter.FormatActivityProgress(d.Activities))
	}
	for _, w := range d.Warnings {
		b.WriteString(formatter.Warning(w))
		b.WriteString("\n")
	}
	return b.String()
}
