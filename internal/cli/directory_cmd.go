package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/remuikids/kidsboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTenantsCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tenants",
		Short: "List tenants (schools)",
		RunE: func(cmd *cobra.Command, args []string) error {
			tenants, err := a.Tenants.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(tenants) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No tenants."))
				return nil
			}
			rows := make([][]string, 0, len(tenants))
			for _, t := range tenants {
				rows = append(rows, []string{strconv.FormatInt(t.ID, 10), t.ShortName, t.Name})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "SHORT", "NAME"}, rows))
			return nil
		},
	}
}

func newUsersCmd(a *App) *cobra.Command {
	var tenantID int64

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List the users of a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if tenantID == 0 {
				return errors.New("--tenant is required")
			}
			users, err := a.Users.ListByTenant(cmd.Context(), tenantID)
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No users."))
				return nil
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				name := u.FullName()
				if u.Suspended {
					name += " " + formatter.Dim("(suspended)")
				}
				rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.Username, name})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "USERNAME", "NAME"}, rows))
			return nil
		},
	}

	cmd.Flags().Int64Var(&tenantID, "tenant", 0, "Tenant (company) id")
	return cmd
}
