package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/internal/fingerprint"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// FingerResult is one catalog entry together with what a search for it returned.
type FingerResult struct {
	Name    string        `json:"name"              yaml:"name"`
	Query   string        `json:"query"             yaml:"query"`
	Total   int           `json:"total"             yaml:"total"`
	Results []interface{} `json:"results,omitempty" yaml:"results,omitempty"`
}

type fingerOptions struct {
	search bool
	count  bool
	size   int
	limit  int
}

// NewFingerCommand creates the fingerprint catalog command.
func NewFingerCommand() *cobra.Command {
	opts := &fingerOptions{}

	cmd := &cobra.Command{
		Use:     "finger [KEYWORD]",
		Aliases: []string{"fingerprint", "fp"},
		Short:   "Browse built-in fingerprint queries",
		Long: `List the built-in fingerprint queries, or those whose name contains KEYWORD.
With --search or --count every matching query is run in turn.`,
		Example: `  fofa finger
  fofa finger sql
  fofa finger redis --search --size 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := ""
			if len(args) == 1 {
				keyword = args[0]
			}

			return runFinger(cmd, keyword, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.search, "search", false, "run a search for every matching entry")
	cmd.Flags().BoolVar(&opts.count, "count", false, "count results for every matching entry")
	cmd.Flags().IntVarP(&opts.size, "size", "s", constants.DefaultFingerSearchSize, "results per search")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", constants.DefaultDisplayLimit, "results to display per search")

	return cmd
}

func runFinger(cmd *cobra.Command, keyword string, opts *fingerOptions) error {
	entries := fingerprint.List()
	if keyword != "" {
		var found bool

		entries, found = fingerprint.Lookup(keyword)
		if !found {
			return fmt.Errorf("%q: %w", keyword, constants.ErrFingerprintAbsent)
		}
	}

	format, err := outputFormat()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if !opts.search && !opts.count {
		done, err := renderStructured(out, format, nil, entries)
		if err != nil || done {
			return err
		}

		return catalogTable(cmd, entries)
	}

	if opts.search && opts.size <= 0 {
		return constants.ErrInvalidSize
	}

	client, err := ClientFactory()
	if err != nil {
		return err
	}

	structured := format != constants.FormatTable

	results := make([]FingerResult, 0, len(entries))

	for _, entry := range entries {
		result, err := runFingerEntry(client, entry, opts)
		if err != nil {
			return err
		}

		if structured {
			results = append(results, result)

			continue
		}

		// Printed as each call returns so a later failure keeps earlier output.
		err = fingerTable(out, result, opts)
		if err != nil {
			return err
		}
	}

	if !structured {
		return nil
	}

	_, err = renderStructured(out, format, nil, results)

	return err
}

func fingerTable(out io.Writer, result FingerResult, opts *fingerOptions) error {
	heading(out, "[%s] %s", result.Name, result.Query)
	_, _ = fmt.Fprintf(out, "Total: %d\n", result.Total)

	if !opts.search {
		return nil
	}

	page := &fofa.SearchResponse{Results: result.Results}

	return resultsTable(out, nil, page.Rows(), opts.limit)
}

func runFingerEntry(client fofa.Client, entry fingerprint.Entry, opts *fingerOptions) (FingerResult, error) {
	result := FingerResult{Name: entry.Name, Query: entry.Query}

	if !opts.search {
		total, err := client.Count(context.Background(), entry.Query)
		if err != nil {
			return result, fmt.Errorf("failed to count %s: %w", entry.Name, err)
		}

		result.Total = total

		return result, nil
	}

	page, err := client.Search(context.Background(), entry.Query, constants.DefaultPage, opts.size, nil)
	if err != nil {
		return result, fmt.Errorf("failed to search %s: %w", entry.Name, err)
	}

	result.Total = int(page.Total)
	result.Results = page.Results

	return result, nil
}

func catalogTable(cmd *cobra.Command, entries []fingerprint.Entry) error {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header("Name", "Query")

	for _, entry := range entries {
		_ = table.Append(entry.Name, entry.Query)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
