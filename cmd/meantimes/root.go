// cmd/meantimes/root.go
package meantimes

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/meantimes/internal/config"
)

// rootCmd reads a CSV of benchmark measurements and writes the per-program
// summary as CSV. All other commands are attached to it.
var rootCmd = &cobra.Command{
	Use:   "meantimes",
	Short: "Summarize benchmark timings per program",
	Long: `meantimes reads a CSV file of benchmark measurements, groups the rows by the
'program' column and prints the mean and standard error of every measurement
column as CSV. Use - as a path for stdin or stdout.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return writeSummary(cmd, cfg)
	},
}

// Execute runs the root command. On failure it prints the error to stderr
// and exits the process with status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func reportError(w io.Writer, err error) {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP(config.KeyFile, "f", "-", "path to CSV input file (- for stdin)")
	pf.StringP(config.KeyConfig, "c", "", "config file with program and measurement labels (JSON, YAML or TOML)")
	pf.IntP(config.KeyJobs, "j", 1, "number of groups to summarize concurrently")
	pf.Bool(config.KeyDebug, false, "print the resolved config and table shape to stderr")
	rootCmd.Flags().StringP(config.KeyOutput, "o", "-", "path to CSV output file (- for stdout)")

	bindFlags()
}

// bindFlags binds the command-line flags to their viper keys.
func bindFlags() {
	for _, key := range []string{config.KeyFile, config.KeyConfig, config.KeyJobs, config.KeyDebug} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
	viper.BindPFlag(config.KeyOutput, rootCmd.Flags().Lookup(config.KeyOutput))
}
