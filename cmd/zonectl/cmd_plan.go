package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dnsops/zonectl/internal/dns/common/log"
	"github.com/dnsops/zonectl/internal/dns/domain"
	"github.com/dnsops/zonectl/internal/dns/gateways/snapshot"
	"github.com/dnsops/zonectl/internal/dns/infra/metrics"
	"github.com/dnsops/zonectl/internal/dns/repos/history"
	"github.com/dnsops/zonectl/internal/dns/services/reconciler"
)

// newCmdPlan returns the command that reconciles desired zones against
// provider snapshots and prints the resulting change sets. Nothing is ever
// applied.
func newCmdPlan(a *app) *cobra.Command {
	var snapshotDir string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Diff desired zones against provider record snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.loadZones()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if errs, _ := printResults(out, results); errs > 0 {
				return fmt.Errorf("refusing to plan: %d validation error(s)", errs)
			}

			opts := reconciler.PlannerOptions{
				State:        snapshot.New(snapshotDir),
				MarkerPrefix: a.cfg.MarkerPrefix,
				Logger:       log.GetLogger(),
			}
			if a.cfg.HistoryDB != "" {
				store, err := history.Open(a.cfg.HistoryDB)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer store.Close()
				opts.History = store
			}
			planner, err := reconciler.NewPlanner(opts)
			if err != nil {
				return err
			}

			for _, zone := range usableZones(results) {
				cs, err := planner.PlanZone(cmd.Context(), zone)
				if err != nil {
					return fmt.Errorf("plan zone %s: %w", zone.Name, err)
				}
				printChangeSet(out, cs)
				metrics.ObservePlan(cs.Zone, len(cs.ToDelete), len(cs.Satisfied), len(cs.Protected), len(cs.Missing))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "Directory of provider record exports (required)")
	_ = cmd.MarkFlagRequired("snapshot-dir")
	return cmd
}

func printChangeSet(w io.Writer, cs domain.ChangeSet) {
	if cs.Clean() {
		fmt.Fprintf(w, "%s: clean (%d satisfied, %d protected)\n", cs.Zone, len(cs.Satisfied), len(cs.Protected))
		return
	}
	fmt.Fprintf(w, "%s: %d to delete, %d satisfied, %d protected, %d missing\n",
		cs.Zone, len(cs.ToDelete), len(cs.Satisfied), len(cs.Protected), len(cs.Missing))
	for _, rec := range cs.ToDelete {
		fmt.Fprintf(w, "  - delete %s %s %s\n", rec.Type, rec.Name, rec.Content)
	}
	for _, key := range cs.Missing {
		fmt.Fprintf(w, "  - missing %s %s %s\n", key.Type, key.Name, key.Content)
	}
}
