package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hawaka-joe/recfix/internal/verify"
)

// NewVerifyCommand creates the verify command.
func NewVerifyCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <file-path>",
		Short: "Check that a record file is sorted by key",
		Long: `Verify that a file of 100-byte records is in non-decreasing key order.

The check is a single sequential pass that stops at the first out-of-order
record. Equal adjacent keys are accepted; a trailing fragment shorter than
one record is ignored. Exit code 0 means the file is sorted, 1 means an
out-of-order record was found, 2 means the file could not be read.

Example:
  recfix verify output.dat`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runVerify(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	formatter.VerboseLog("verifying %s", path)
	result, err := verify.Check(path)
	if err != nil {
		_ = formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitCommandError, "verification aborted", err)
	}

	if result.Sorted {
		if formatter.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ verified: %d records in order\n", result.Records)
		return nil
	}

	diag := fmt.Sprintf("record %d: key %d < previous key %d", result.Index, result.Key, result.PrevKey)

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeUnsorted,
				Message: diag,
			},
		}
		if err := json.NewEncoder(formatter.Writer).Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, diag)
	}

	fmt.Fprintf(formatter.Writer, "✗ %s\n", diag)
	return NewExitError(ExitFailure, diag)
}
