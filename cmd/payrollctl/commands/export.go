package commands

import (
	"fmt"

	"elec-payroll/internal/payrollexport"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func exportCmd() *cobra.Command {
	var (
		provider string
		from     string
		to       string
		outDir   string
		stdout   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render approved hours as a provider payroll file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, known := payrollexport.ParseProvider(provider); !known {
				logger.Warn("unknown provider, using generic csv layout", zap.String("provider", provider))
			}

			entries, err := payrollEntries(from, to)
			if err != nil {
				return err
			}

			var sink payrollexport.Sink = payrollexport.NewFileSink(outDir)
			if stdout {
				sink = payrollexport.WriterSink{W: cmd.OutOrStdout()}
			}
			if err := payrollexport.ExportAndDownload(cmd.Context(), sink, provider, entries, from, to); err != nil {
				return err
			}

			if !stdout {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d employees to %s\n",
					len(entries), payrollexport.ExportFileName(provider, from, to))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "csv", "xero, sage, quickbooks, intuit or csv")
	cmd.Flags().StringVar(&from, "from", "", "period start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&to, "to", "", "period end, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory the export file is written to")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the export to stdout instead of a file")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
