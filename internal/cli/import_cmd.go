package cli

import (
	"errors"
	"fmt"

	"github.com/remuikids/kidsboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load a YAML or JSON school snapshot into the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Import == nil {
				return errors.New("import needs the sqlite store; the moodle store is read-only")
			}
			res, err := a.Import.ImportSnapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}
