// Package commands implements payrollctl, an offline front end for the
// timesheet aggregator and the payroll export formatter.
package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	entriesPath string
	rosterPath  string
	verbose     bool

	logger = zap.NewNop()
)

func Execute() error {
	return newRootCmd(os.Stdout).Execute()
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "payrollctl",
		Short:         "Aggregate timesheets and render payroll exports from JSON files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				logger = zap.NewNop()
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			logger = l.Named("payrollctl")
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&entriesPath, "entries", "", "JSON file with an array of time entries (required)")
	root.PersistentFlags().StringVar(&rosterPath, "roster", "", "JSON file with an array of roster members")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	_ = root.MarkPersistentFlagRequired("entries")

	root.AddCommand(exportCmd(), jobCostsCmd(), jobLabourCmd())
	return root
}
