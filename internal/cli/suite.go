package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hawaka-joe/recfix/internal/suite"
)

// NewSuiteCommand creates the suite command.
func NewSuiteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suite <manifest.yaml>",
		Short: "Run a fixture suite manifest",
		Long: `Run a YAML manifest of fixture and check steps.

Fixtures are generated first, then every check is verified; paths in the
manifest resolve relative to the manifest file. The external sorter runs
out of band between the two phases, so a typical workflow is:

  recfix suite fixtures.yaml   # generate inputs (checks on inputs, if any)
  ./psort input.dat output.dat
  recfix suite results.yaml    # verify sorter output

Exit code 0 when every check meets its expectation, 1 when any check
fails, 2 for manifest or I/O errors.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSuite(opts *RootOptions, manifestPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	manifest, err := suite.LoadManifest(manifestPath)
	if err != nil {
		_ = formatter.Error(ErrCodeManifest, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid manifest", err)
	}

	slog.Debug("suite loaded", "name", manifest.Name,
		"fixtures", len(manifest.Fixtures), "checks", len(manifest.Checks))

	report, err := manifest.Run(filepath.Dir(manifestPath))
	if err != nil {
		_ = formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitCommandError, "suite aborted", err)
	}

	return outputSuiteReport(formatter, report)
}

func outputSuiteReport(formatter *OutputFormatter, report *suite.Report) error {
	if formatter.Format == "json" {
		if report.Pass {
			return formatter.Success(report)
		}
		response := CLIResponse{
			Status: "error",
			Data:   report,
			Error: &CLIError{
				Code:    ErrCodeUnsorted,
				Message: fmt.Sprintf("suite %q failed", report.Name),
			},
		}
		if err := json.NewEncoder(formatter.Writer).Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("suite %q failed", report.Name))
	}

	// Text format
	fmt.Fprintf(formatter.Writer, "Suite: %s\n", report.Name)
	for _, step := range report.Steps {
		mark := "✓"
		if !step.Pass {
			mark = "✗"
		}
		fmt.Fprintf(formatter.Writer, "  %s %s %s: %s\n", mark, step.Kind, step.Path, step.Detail)
	}

	if !report.Pass {
		fmt.Fprintln(formatter.Writer, "FAIL")
		return NewExitError(ExitFailure, fmt.Sprintf("suite %q failed", report.Name))
	}
	fmt.Fprintln(formatter.Writer, "PASS")
	return nil
}
