package cli

import (
	"errors"
	"fmt"

	"github.com/remuikids/kidsboard/internal/app"
	"github.com/remuikids/kidsboard/internal/cli/formatter"
	"github.com/remuikids/kidsboard/internal/domain"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *App) *cobra.Command {
	var (
		tenantID    int64
		activeOnly  bool
		approximate bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the school manager cards for a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tenantID == 0 {
				return errors.New("--tenant is required")
			}
			stats, err := a.Stats.Stats(cmd.Context(), app.TenantStatsRequest{
				TenantID:           tenantID,
				ActiveOnly:         activeOnly,
				IncludeApproximate: approximate,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTenantStats(stats))
			return nil
		},
	}

	cmd.Flags().Int64Var(&tenantID, "tenant", 0, "Tenant (company) id")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Count only users with an active enrolment")
	cmd.Flags().BoolVar(&approximate, "approximate", false, "Also show the role-blind non-manager member count")

	return cmd
}

func newHeadcountCmd(a *App) *cobra.Command {
	var (
		tenantID   int64
		roles      domain.RoleEquivalenceSet
		activeOnly bool
	)

	cmd := &cobra.Command{
		Use:     "headcount",
		Short:   "Count distinct tenant users holding any of the given roles",
		Example: `  kidsboard headcount --tenant 1 --roles teacher,editingteacher`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tenantID == 0 {
				return errors.New("--tenant is required")
			}
			if len(roles) == 0 {
				return errors.New("--roles is required")
			}
			res, err := a.Stats.Headcount(cmd.Context(), app.HeadcountRequest{
				TenantID:   tenantID,
				Roles:      roles,
				ActiveOnly: activeOnly,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHeadcount(res))
			return nil
		},
	}

	cmd.Flags().Int64Var(&tenantID, "tenant", 0, "Tenant (company) id")
	cmd.Flags().Var(newRoleListValue(&roles), "roles", "Role shortnames, comma-separated or repeated")
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Count only users with an active enrolment")

	return cmd
}
