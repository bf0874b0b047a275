package cli

import (
	"github.com/richxcame/trip-dashboard/pkg/config"
	"github.com/richxcame/trip-dashboard/pkg/logger"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	baseURL string
	debug   bool
	cfg     *config.Config
}

// NewRootCommand builds the tripdash command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "tripdash",
		Short:         "Browse, filter and chart ride-hailing trips",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("dashboard-api")
			if err != nil {
				return err
			}
			if opts.baseURL != "" {
				cfg.Trips.BaseURL = opts.baseURL
			}

			env := cfg.Server.Environment
			if opts.debug {
				env = "development"
			}
			if err := logger.Init(env); err != nil {
				return err
			}

			opts.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "trips-url", "", "Trip listing base URL (overrides TRIPS_BASE_URL)")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "v", false, "Enable debug logs")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newShowCommand(opts))
	return cmd
}
