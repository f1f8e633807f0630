package meantimes

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mwiater/meantimes/internal/smartio"
	"github.com/mwiater/meantimes/internal/summary"
)

const (
	inputCSV = "program,compilation,setup,witness,proof\n" +
		"balances,10,5,3,1\n" +
		"balances,12,5,3,1\n"
	wantCSV = "program,compilation_mean,compilation_stderr,setup_mean,setup_stderr,witness_mean,witness_stderr,proof_mean,proof_stderr\n" +
		"balances,11.0,1.0,5.0,0.0,3.0,0.0,1.0,0.0\n" +
		"whitelist,,,,,,,,\n" +
		"merkle,,,,,,,,\n" +
		"\n"
)

// resetState restores flag defaults, viper and the filesystem between runs
// of the shared rootCmd.
func resetState(t *testing.T) afero.Fs {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	reset(rootCmd.Flags())

	viper.Reset()
	bindFlags()

	oldFs := appFs
	appFs = afero.NewMemMapFs()
	t.Cleanup(func() { appFs = oldFs })
	return appFs
}

// execute runs rootCmd with args and stdin, returning what it wrote.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	// cobra falls back to os.Args for nil args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmd(t *testing.T) {
	resetState(t)

	// Execute the command with a non-existent subcommand
	_, _, err := execute(t, "", "nonexistent")
	if err == nil {
		t.Fatal("Expected an error for a nonexistent command, but got none")
	}

	expected := "unknown command \"nonexistent\" for \"meantimes\""
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error to contain '%s', but got '%s'", expected, err.Error())
	}
}

func TestRoot_Stdin(t *testing.T) {
	resetState(t)
	out, _, err := execute(t, inputCSV)
	if err != nil {
		t.Fatalf("meantimes failed: %v", err)
	}
	if out != wantCSV {
		t.Errorf("Unexpected output:\n%q\nwant:\n%q", out, wantCSV)
	}
}

func TestRoot_FileMatchesStdin(t *testing.T) {
	fs := resetState(t)
	if err := afero.WriteFile(fs, "times.csv", []byte(inputCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	fromFile, _, err := execute(t, "", "--file", "times.csv")
	if err != nil {
		t.Fatalf("meantimes --file failed: %v", err)
	}

	resetState(t)
	fromStdin, _, err := execute(t, inputCSV, "-f", "-")
	if err != nil {
		t.Fatalf("meantimes -f - failed: %v", err)
	}
	if fromFile != fromStdin {
		t.Errorf("File and stdin output differ:\n%q\n%q", fromFile, fromStdin)
	}
}

func TestRoot_OutputFile(t *testing.T) {
	fs := resetState(t)
	out, _, err := execute(t, inputCSV, "--output", "summary.csv", "--jobs", "4")
	if err != nil {
		t.Fatalf("meantimes --output failed: %v", err)
	}
	if out != "" {
		t.Errorf("Expected nothing on stdout, got %q", out)
	}
	b, err := afero.ReadFile(fs, "summary.csv")
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(b) != wantCSV {
		t.Errorf("Unexpected file content:\n%q", string(b))
	}
}

func TestRoot_MissingInputLeavesOutputUntouched(t *testing.T) {
	fs := resetState(t)
	_, _, err := execute(t, "", "--file", "missing.csv", "--output", "summary.csv")

	var fae *smartio.FileAccessError
	if !errors.As(err, &fae) {
		t.Fatalf("Expected *smartio.FileAccessError, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing.csv") {
		t.Errorf("Expected error to name the path, got %q", err.Error())
	}
	if ok, _ := afero.Exists(fs, "summary.csv"); ok {
		t.Error("Output must not be created when the input cannot be read")
	}
}

func TestRoot_ParseErrors(t *testing.T) {
	tests := []struct {
		name, input, want string
	}{
		{"missing column", "program,compilation,setup,witness\nbalances,1,2,3\n", `missing column "proof"`},
		{"empty input", "", "no columns to parse"},
		{"wide row", "program,compilation,setup,witness,proof\nbalances,1,2,3,4,5\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetState(t)
			out, _, err := execute(t, tt.input)
			var pe *summary.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected *summary.ParseError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), "<stdin>") {
				t.Errorf("Unexpected error message %q", err.Error())
			}
			if out != "" {
				t.Errorf("Expected no output on failure, got %q", out)
			}
		})
	}
}

func TestRoot_ConfigFile(t *testing.T) {
	resetState(t)
	path := filepath.Join(t.TempDir(), "labels.yaml")
	cfg := "programs: [merkle]\nmeasurements: [proof, setup]\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "program,proof,setup\nmerkle,2,4\nmerkle,4,4\n", "--config", path)
	if err != nil {
		t.Fatalf("meantimes --config failed: %v", err)
	}
	want := "program,proof_mean,proof_stderr,setup_mean,setup_stderr\nmerkle,3.0,1.0,4.0,0.0\n\n"
	if out != want {
		t.Errorf("Unexpected output:\n%q\nwant:\n%q", out, want)
	}
}

func TestRoot_Debug(t *testing.T) {
	resetState(t)
	out, errOut, err := execute(t, inputCSV, "--debug")
	if err != nil {
		t.Fatalf("meantimes --debug failed: %v", err)
	}
	if out != wantCSV {
		t.Errorf("Debug output must not change stdout, got %q", out)
	}
	for _, want := range []string{"Programs", "Columns", "Rows"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("Expected %q in debug output, got %q", want, errOut)
		}
	}
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("boom"))
	if !strings.Contains(buf.String(), "Error: boom") {
		t.Errorf("Unexpected error report %q", buf.String())
	}
}

func TestCommands_HaveDescriptions(t *testing.T) {
	var check func(*cobra.Command)
	check = func(cmd *cobra.Command) {
		if cmd.Short == "" || cmd.Long == "" {
			t.Fatalf("command %s missing Short/Long", cmd.Name())
		}
		for _, sc := range cmd.Commands() {
			if sc.IsAvailableCommand() {
				check(sc)
			}
		}
	}
	check(rootCmd)
}
