// cmd/meantimes/list_labels.go
package meantimes

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mwiater/meantimes/internal/config"
	"github.com/mwiater/meantimes/internal/summary"
)

// listLabelsCmd implements 'list labels', which prints the configured
// programs and measurements in output order, followed by the CSV header
// they produce.
var listLabelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the configured programs and measurements",
	Long:  `The 'labels' subcommand lists the program labels (output rows) and measurement labels (output columns) in the order they are summarized, and the resulting CSV header.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		printLabels(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func init() {
	listCmd.AddCommand(listLabelsCmd)
}

func printLabels(w io.Writer, cfg *config.Config) {
	headingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	section := func(title string, labels []string) {
		fmt.Fprintln(w, headingStyle.Render(title+":"))
		for i, l := range labels {
			fmt.Fprintln(w, labelStyle.Render(fmt.Sprintf("  %d. %s", i+1, l)))
		}
		fmt.Fprintln(w)
	}
	section("Programs", cfg.Programs)
	section("Measurements", cfg.Measurements)

	res := summary.Result{Measurements: cfg.Measurements}
	fmt.Fprintln(w, headingStyle.Render("Output header:"))
	fmt.Fprintln(w, "  "+strings.Join(res.Header(), ","))
}
