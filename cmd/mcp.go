package cmd

import (
	"github.com/huangsam/workbench/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the Workbench MCP server",
	Long:    `Launch an MCP server over stdio that lets AI agents manage dogs and read the defects report via standard tools.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		dogs, closeStore, err := openDogService()
		if err != nil {
			return err
		}
		defer closeStore()

		defects, closeSource, err := openDefectService(cfg.Watch)
		if err != nil {
			return err
		}
		defer closeSource()

		return mcp.StartMCPServer(rootCtx, dogs, defects)
	},
}
