package cmd

import (
	"github.com/huangsam/workbench/internal/outwriter"
	"github.com/spf13/cobra"
)

// defectsCmd prints the per-company defects report.
var defectsCmd = &cobra.Command{
	Use:   "defects",
	Short: "Aggregate the defects file per company",
	Long: `Sum production and defective pieces per company and derive the OK count
and the OK and error percentages. Companies appear in the order they are first seen.

Examples:
  # Table with quality labels
  workbench defects --defects-file ./defects.json

  # Same shape as the HTTP endpoint
  workbench defects --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		svc, closeSource, err := openDefectService(false)
		if err != nil {
			return err
		}
		defer closeSource()

		result, err := svc.Aggregate(rootCtx)
		if err != nil {
			return err
		}
		return outwriter.NewOutWriter().WriteAggregates(result, cfg)
	},
}
