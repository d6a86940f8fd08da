package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/core/services"
)

// ImportRosterCmd creates the importRoster command
func ImportRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "importRoster",
		Short: "Import employees and clients from the roster spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.ImportRoster(app.Ctx, app.Database, sheets, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster imported: %d employees, %d clients\n", result.Employees, result.Clients)
			return nil
		},
	}
}
