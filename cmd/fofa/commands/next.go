package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/spf13/cobra"
)

type nextOptions struct {
	sinks  sinkOptions
	size   int
	limit  int
	query  string
	fields []string
}

// NewNextCommand creates the cursor pagination command.
func NewNextCommand() *cobra.Command {
	opts := &nextOptions{}

	cmd := &cobra.Command{
		Use:   "next CURSOR",
		Short: "Fetch the next page by cursor",
		Long: `Fetch the page following CURSOR. The cursor is the "next" value of a previous
response and must be passed back unchanged. Cursors only move forward and may
expire after a long gap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.size, "size", "s", constants.DefaultPageSize, "results per page (max 10000)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", constants.DefaultDisplayLimit, "results to display")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "query the cursor belongs to")
	cmd.Flags().StringSliceVarP(&opts.fields, "fields", "f", nil, "field names for display and CSV (comma-separated)")
	opts.sinks.register(cmd)

	return cmd
}

func runNext(cmd *cobra.Command, cursor string, opts *nextOptions) error {
	if cursor == "" {
		return constants.ErrCursorRequired
	}

	if opts.size <= 0 {
		return constants.ErrInvalidSize
	}

	if opts.sinks.csvFile != "" && len(opts.fields) == 0 {
		return constants.ErrCSVNeedsFields
	}

	format, err := outputFormat()
	if err != nil {
		return err
	}

	client, err := ClientFactory()
	if err != nil {
		return err
	}

	result, err := client.Next(context.Background(), cursor, opts.size, opts.query)
	if err != nil {
		return fmt.Errorf("failed to fetch next page: %w", err)
	}

	out := cmd.OutOrStdout()

	done, err := renderStructured(out, format, result.Raw, result)
	if err != nil {
		return err
	}

	if !done {
		heading(out, "Cursor: %s", cursor)
		_, _ = fmt.Fprintf(out, "Returned: %d\n", len(result.Results))

		err = resultsTable(out, opts.fields, result.Rows(), opts.limit)
		if err != nil {
			return err
		}

		if result.Next != "" {
			_, _ = fmt.Fprintf(out, "Next cursor: %s\n", result.Next)
		}
	}

	return writeSinks(noticeWriter(cmd, done), &opts.sinks, opts.query, cursor, opts.fields, result)
}
