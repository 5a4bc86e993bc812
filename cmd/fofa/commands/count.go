package commands

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/spf13/cobra"
)

// CountView is the rendered form of a count.
type CountView struct {
	Query string `json:"query" yaml:"query"`
	Total int    `json:"total" yaml:"total"`
}

// NewCountCommand creates the count command.
func NewCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "count QUERY",
		Short:   "Count matching assets",
		Long:    "Report how many assets match a query without fetching them",
		Example: `  fofa count 'port="22"'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
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

			total, err := client.Count(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to count: %w", err)
			}

			out := cmd.OutOrStdout()

			done, err := renderStructured(out, format, nil, CountView{Query: query, Total: total})
			if err != nil || done {
				return err
			}

			heading(out, "Query: %s", query)
			_, _ = fmt.Fprintf(out, "Total: %d\n", total)

			return nil
		},
	}
}
