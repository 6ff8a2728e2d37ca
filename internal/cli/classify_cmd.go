package cli

import (
	"errors"
	"fmt"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/cli/formatter"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/remuikids/kidsboard/internal/gradeband"
	"github.com/remuikids/kidsboard/internal/service"
	"github.com/spf13/cobra"
)

func newClassifyCmd(a *App) *cobra.Command {
	var (
		userID  int64
		cohorts []string
		profile string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Infer a student's grade band",
		Long: `Infer a student's grade band from the store (--user), or from raw
cohort names and a profile value given on the command line.`,
		Example: `  kidsboard classify --user 10
  kidsboard classify --cohort "Grade 9 - Advanced" --cohort "Chess Club"
  kidsboard classify --profile "grade 4" --tie-break highest_grade`,
		RunE: func(cmd *cobra.Command, args []string) error {
			offline := len(cohorts) > 0 || cmd.Flags().Changed("profile")
			if userID != 0 && offline {
				return errors.New("--user cannot be combined with --cohort or --profile")
			}

			var res *app.ClassifyResult
			if offline {
				explained := offlineClassifier(cmd, a).Explain(cohorts, profileArg(cmd, profile))
				res = service.ClassifyResultFrom(explained, cohorts)
			} else {
				if userID == 0 {
					return errors.New("either --user or --cohort/--profile is required")
				}
				var err error
				res, err = a.Classify.ClassifyUser(cmd.Context(), app.ClassifyRequest{UserID: userID})
				if err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClassify(res))
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "User id to classify from the store")
	cmd.Flags().StringArrayVar(&cohorts, "cohort", nil, "Cohort name, in membership order (repeatable)")
	cmd.Flags().StringVar(&profile, "profile", "", "Value of the grade profile field")

	return cmd
}

func profileArg(cmd *cobra.Command, profile string) *string {
	if !cmd.Flags().Changed("profile") {
		return nil
	}
	return &profile
}

// offlineClassifier applies a --tie-break given on this invocation over the
// configured classifier.
func offlineClassifier(cmd *cobra.Command, a *App) *gradeband.Classifier {
	c := a.classifier()
	if f := cmd.Flags().Lookup("tie-break"); f != nil && f.Changed {
		return gradeband.New(c.Boundaries(), domain.TieBreakPolicy(f.Value.String()))
	}
	return c
}
