package main

import (
	"os"

	"elec-payroll/cmd/payrollctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
