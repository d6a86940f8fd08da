package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jakechorley/sparkleflow-dispatch/pkg/api"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stateless dispatch API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = app.Cfg.ServeAddr()
			}

			ctx, stop := signal.NotifyContext(app.Ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return api.NewServer(app.Logger, app.Recorder, nil).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to serverAddr from config, then :8080)")

	return cmd
}
