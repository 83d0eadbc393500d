package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hawaka-joe/recfix/internal/catalog"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Catalog string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged fixtures",
		Long: `List the fixtures recorded in a catalog database, newest first.

Fixtures enter the catalog via generate --catalog.

Example:
  recfix list --catalog fixtures.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Catalog, "catalog", "", "path to catalog database (required)")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cat, err := catalog.Open(opts.Catalog)
	if err != nil {
		_ = formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open catalog", err)
	}
	defer cat.Close()

	entries, err := cat.List(cmd.Context())
	if err != nil {
		_ = formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list catalog", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "catalog is empty")
		return nil
	}

	for _, e := range entries {
		seed := "-"
		if e.Seed != nil {
			seed = fmt.Sprintf("%d", *e.Seed)
		}
		fmt.Fprintf(formatter.Writer, "%s  %-12s %8d records %10d bytes  seed=%-6s %s\n",
			e.CreatedAt.UTC().Format(time.RFC3339), e.Mode, e.Records, e.Bytes, seed, e.Path)
	}
	return nil
}
