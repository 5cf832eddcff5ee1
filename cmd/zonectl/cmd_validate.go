package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newCmdValidate returns the command that validates every zone file and
// reports all issues. Warnings alone do not fail the run.
func newCmdValidate(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate all zone files",
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.loadZones()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			errs, warns := printResults(out, results)
			fmt.Fprintf(out, "%d file(s), %d error(s), %d warning(s)\n", len(results), errs, warns)
			if errs > 0 {
				return fmt.Errorf("validation failed with %d error(s)", errs)
			}
			return nil
		},
	}
}
