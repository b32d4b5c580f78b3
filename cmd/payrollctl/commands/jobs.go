package commands

import (
	"encoding/json"
	"fmt"

	"elec-payroll/internal/payrollexport"
	"elec-payroll/internal/timesheet"

	"github.com/spf13/cobra"
)

func jobCostsCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "job-costs",
		Short: "Print labour hours and cost per job for a pay period",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := payrollEntries(from, to)
			if err != nil {
				return err
			}
			return printJSON(cmd, payrollexport.BuildJobCostReport(entries))
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "period start, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&to, "to", "", "period end, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func jobLabourCmd() *cobra.Command {
	var (
		jobID  string
		budget float64
	)

	cmd := &cobra.Command{
		Use:   "job-labour",
		Short: "Summarise approved and pending labour for one job",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, roster, err := loadInputs()
			if err != nil {
				return err
			}

			var b *float64
			if cmd.Flags().Changed("budget") {
				if budget < 0 {
					return fmt.Errorf("--budget must not be negative")
				}
				b = &budget
			}
			return printJSON(cmd, timesheet.ComputeJobLabour(entries, roster, jobID, b))
		},
	}

	cmd.Flags().StringVar(&jobID, "job", "", "job id (required)")
	cmd.Flags().Float64Var(&budget, "budget", 0, "budgeted labour cost for the job")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
