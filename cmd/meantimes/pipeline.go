package meantimes

import (
	"context"
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/meantimes/internal/config"
	"github.com/mwiater/meantimes/internal/summary"
	"github.com/mwiater/meantimes/internal/smartio"
)

// appFs is the filesystem input and output paths resolve against.
var appFs = afero.NewOsFs()

// tableShape is what --debug reports about the input.
type tableShape struct {
	Input   string
	Columns []string
	Rows    int
}

func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// newResolver binds "-" to the command's own streams so they can be
// redirected in tests.
func newResolver(cmd *cobra.Command) *smartio.Resolver {
	return &smartio.Resolver{
		Fs:     appFs,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
	}
}

func displayName(path string) string {
	if path == smartio.Stdio {
		return "<stdin>"
	}
	return path
}

// readTable reads the whole input before releasing it.
func readTable(rsv *smartio.Resolver, path string) (*summary.Table, error) {
	in, release, err := rsv.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer release()

	tbl, err := summary.ReadTable(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(path), err)
	}
	return tbl, nil
}

// summarize reads cfg.File and aggregates it with the configured labels.
func summarize(cmd *cobra.Command, rsv *smartio.Resolver, cfg *config.Config) (*summary.Result, error) {
	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), cfg)
	}

	tbl, err := readTable(rsv, cfg.File)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), tableShape{Input: displayName(cfg.File), Columns: tbl.Header, Rows: tbl.Len()})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := summary.Aggregate(ctx, tbl, cfg.Labels(), cfg.Options())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(cfg.File), err)
	}
	return res, nil
}

// writeSummary runs the whole pipeline. The output is only opened once the
// input has been read and aggregated, so a failed run leaves it untouched.
func writeSummary(cmd *cobra.Command, cfg *config.Config) error {
	rsv := newResolver(cmd)
	res, err := summarize(cmd, rsv, cfg)
	if err != nil {
		return err
	}

	out, release, err := rsv.OpenOutput(cfg.Output)
	if err != nil {
		return err
	}
	if err := summary.WriteCSV(out, res); err != nil {
		release()
		return err
	}
	if err := release(); err != nil {
		return fmt.Errorf("could not close %s: %w", cfg.Output, err)
	}
	return nil
}
