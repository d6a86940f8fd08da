package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type migrator interface {
	RunMigrations(ctx context.Context) ([]string, error)
}

// MigrateCmd creates the migrate command
func MigrateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending PostgreSQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := app.Database.(migrator)
			if !ok {
				return fmt.Errorf("migrate requires the postgres database backend")
			}

			applied, err := m.RunMigrations(app.Ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			if len(applied) == 0 {
				fmt.Println("Database is up to date")
				return nil
			}
			fmt.Printf("\n✓ Applied %d migrations:\n", len(applied))
			for _, name := range applied {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}
}
