package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/vrptw/infra/source"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and check an instance without solving it",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	inst, err := source.Load(cfg.Instance)
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}
	if err := inst.Validate(); err != nil {
		return err
	}
	demand := 0
	for _, c := range inst.Customers {
		demand += c.Demand
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d customers, %d vehicles x %d, total demand %d\n",
		inst.Name, len(inst.Customers), inst.Fleet.Count, inst.Fleet.Capacity, demand)
	return err
}
