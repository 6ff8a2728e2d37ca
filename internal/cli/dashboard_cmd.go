package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *App) *cobra.Command {
	var (
		userID    int64
		courseIDs []int64
		static    bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show a student's landing page",
		Long: `Show a student's landing page: grade band, dashboard layout and course
progress. On a terminal it opens an interactive view; without --user it first
asks for a school and a student.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			interactive := a.interactive() && !static

			if userID == 0 {
				if !interactive {
					return errors.New("--user is required")
				}
				picked, err := pickUser(ctx, a)
				if err != nil {
					return err
				}
				userID = picked
			}
			req := app.DashboardRequest{UserID: userID, CourseIDs: courseIDs}

			if interactive {
				_, err := tea.NewProgram(newDashboardModel(ctx, a.Dashboard, req),
					tea.WithContext(ctx),
					tea.WithOutput(cmd.OutOrStdout()),
				).Run()
				return err
			}

			dash, err := a.Dashboard.StudentDashboard(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStudentDashboard(dash))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "Student user id")
	cmd.Flags().Int64SliceVar(&courseIDs, "course", nil, "Limit to these enrolled course ids")
	cmd.Flags().BoolVar(&static, "static", false, "Print the dashboard instead of opening the interactive view")

	return cmd
}
