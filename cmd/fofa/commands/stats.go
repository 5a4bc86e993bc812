package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// StatsView is the rendered form of a field distribution.
type StatsView struct {
	Query   string           `json:"query"   yaml:"query"`
	Field   string           `json:"field"   yaml:"field"`
	Entries []fofa.StatEntry `json:"entries" yaml:"entries"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand() *cobra.Command {
	var (
		field string
		limit int
	)

	cmd := &cobra.Command{
		Use:     "stats QUERY",
		Aliases: []string{"stat"},
		Short:   "Aggregate results by field",
		Long:    "Show the most frequent values of a field across the results of a query",
		Example: `  fofa stats 'app="nginx"' --field country --limit 10`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0], field, limit)
		},
	}

	cmd.Flags().StringVarP(&field, "field", "t", constants.DefaultStatsField, "field to aggregate")
	cmd.Flags().IntVarP(&limit, "limit", "l", constants.DefaultStatsLimit, "values to display")

	return cmd
}

func runStats(cmd *cobra.Command, query, field string, limit int) error {
	if query == "" {
		return constants.ErrQueryRequired
	}

	format, err := outputFormat()
	if err != nil {
		return err
	}

	client, err := ClientFactory()
	if err != nil {
		return err
	}

	result, err := client.Stats(context.Background(), query, field)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	view := StatsView{
		Query:   query,
		Field:   field,
		Entries: fofa.TopStats(result.Distribution(field), limit),
	}

	out := cmd.OutOrStdout()

	done, err := renderStructured(out, format, nil, view)
	if err != nil || done {
		return err
	}

	heading(out, "Query: %s", query)
	heading(out, "Field: %s", field)

	if len(view.Entries) == 0 {
		_, _ = fmt.Fprintln(out, "No values found")

		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("Value", "Count")

	for _, entry := range view.Entries {
		_ = table.Append(entry.Value, color.CyanString("%d", entry.Count))
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
