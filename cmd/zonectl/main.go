package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dnsops/zonectl/internal/dns/common/log"
	"github.com/dnsops/zonectl/internal/dns/config"
	"github.com/dnsops/zonectl/internal/dns/infra/metrics"
)

// app carries the resolved configuration into the subcommands.
type app struct {
	cfg *config.AppConfig
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:     appName,
		Short:   "Declarative DNS zone validation and reconciliation",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("zone-dir", "", "Directory of zone files (env ZONECTL_ZONE_DIR)")
	cmd.PersistentFlags().String("tunnel-file", "", "Global tunnel document (env ZONECTL_TUNNEL_FILE)")
	cmd.PersistentFlags().String("marker-prefix", "", "Ownership marker TXT prefix (env ZONECTL_MARKER_PREFIX)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		// Flags win over environment.
		if v, _ := c.Flags().GetString("zone-dir"); v != "" {
			cfg.ZoneDir = v
		}
		if v, _ := c.Flags().GetString("tunnel-file"); v != "" {
			cfg.TunnelFile = v
		}
		if v, _ := c.Flags().GetString("marker-prefix"); v != "" {
			cfg.MarkerPrefix = v
		}
		if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
			return fmt.Errorf("logging configuration error: %w", err)
		}
		if cfg.MetricsAddr != "" {
			go func() {
				if err := metrics.Serve(cfg.MetricsAddr); err != nil {
					log.Warn(map[string]any{"error": err, "addr": cfg.MetricsAddr}, "Metrics endpoint failed")
				}
			}()
		}
		a.cfg = cfg
		return nil
	}

	cmd.AddCommand(newCmdValidate(a))
	cmd.AddCommand(newCmdPlan(a))
	cmd.AddCommand(newCmdScan(a))
	cmd.AddCommand(newCmdVersion())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
