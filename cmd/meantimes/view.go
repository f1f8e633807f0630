// cmd/meantimes/view.go
package meantimes

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/meantimes/internal/tui"
)

var startViewer = tui.Run

// viewCmd represents the 'view' command.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the summary in an interactive table",
	Long:  `The 'view' command summarizes the input exactly like the root command but shows the result in an interactive terminal table instead of writing CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		res, err := summarize(cmd, newResolver(cmd), cfg)
		if err != nil {
			return err
		}
		return startViewer(displayName(cfg.File), res)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
