package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/internal/export"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/spf13/cobra"
)

type sinkOptions struct {
	jsonFile string
	csvFile  string
	publish  bool
	natsURL  string
	subject  string
}

func (o *sinkOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.jsonFile, "json-file", "", "save the full raw response as JSON")
	cmd.Flags().StringVar(&o.csvFile, "csv-file", "", "save results as CSV (requires --fields)")
	cmd.Flags().BoolVar(&o.publish, "publish", false, "publish each result to NATS")
	cmd.Flags().StringVar(&o.natsURL, "nats-url", constants.DefaultNATSURL, "NATS server URL for --publish")
	cmd.Flags().StringVar(&o.subject, "subject", constants.DefaultSubject, "NATS subject for --publish")
}

type searchOptions struct {
	sinks  sinkOptions
	size   int
	page   int
	limit  int
	fields []string
	full   bool
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search assets",
		Long:  "Run a FOFA query with offset pagination (page and size)",
		Example: `  fofa search 'app="nginx" && country="CN"'
  fofa search 'port="6379"' --fields ip,port,protocol --csv-file redis.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.size, "size", "s", constants.DefaultPageSize, "results per page (max 10000)")
	cmd.Flags().IntVarP(&opts.page, "page", "p", constants.DefaultPage, "page number")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", constants.DefaultDisplayLimit, "results to display")
	cmd.Flags().StringSliceVarP(&opts.fields, "fields", "f", nil, "fields to return (comma-separated)")
	cmd.Flags().BoolVar(&opts.full, "full", false, "search all data instead of the last year")
	opts.sinks.register(cmd)

	return cmd
}

func runSearch(cmd *cobra.Command, query string, opts *searchOptions) error {
	if query == "" {
		return constants.ErrQueryRequired
	}

	err := validatePaging(opts.page, opts.size)
	if err != nil {
		return err
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

	result, err := client.Search(context.Background(), query, opts.page, opts.size, &fofa.SearchOptions{
		Fields: opts.fields,
		Full:   opts.full,
	})
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}

	out := cmd.OutOrStdout()

	done, err := renderStructured(out, format, result.Raw, result)
	if err != nil {
		return err
	}

	if !done {
		heading(out, "Query: %s", query)
		_, _ = fmt.Fprintf(out, "Total: %d, Page: %d, Returned: %d\n", result.Total, opts.page, len(result.Results))

		err = resultsTable(out, opts.fields, result.Rows(), opts.limit)
		if err != nil {
			return err
		}

		if result.Next != "" {
			_, _ = fmt.Fprintf(out, "Next cursor: %s\n", result.Next)
		}
	}

	return writeSinks(noticeWriter(cmd, done), &opts.sinks, query, "", opts.fields, result)
}

// noticeWriter keeps status lines out of stdout when stdout carries JSON or YAML.
func noticeWriter(cmd *cobra.Command, structured bool) io.Writer {
	if structured {
		return cmd.ErrOrStderr()
	}

	return cmd.OutOrStdout()
}

func writeSinks(out io.Writer, sinks *sinkOptions, query, cursor string, fields []string, result *fofa.SearchResponse) error {
	if sinks.jsonFile != "" {
		err := export.WriteJSON(sinks.jsonFile, result.Raw)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "Saved: %s\n", sinks.jsonFile)
	}

	if sinks.csvFile != "" {
		err := export.WriteCSV(sinks.csvFile, fields, result.Rows())
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "Saved: %s\n", sinks.csvFile)
	}

	if sinks.publish {
		return publishResults(out, sinks, query, cursor, fields, result)
	}

	return nil
}

// Publisher is the sink --publish writes to.
type Publisher interface {
	PublishRows(query, cursor string, fields []string, rows [][]string) (int, error)
	Close() error
}

// PublisherFactory opens the --publish sink. Tests replace it.
var PublisherFactory = func(url, subject string) (Publisher, error) {
	return export.Connect(url, subject)
}

func publishResults(out io.Writer, sinks *sinkOptions, query, cursor string, fields []string, result *fofa.SearchResponse) error {
	publisher, err := PublisherFactory(sinks.natsURL, sinks.subject)
	if err != nil {
		return err
	}

	sent, err := publisher.PublishRows(query, cursor, fields, result.Rows())
	closeErr := publisher.Close()

	if err != nil {
		return err
	}

	if closeErr != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", closeErr)
	}

	_, _ = fmt.Fprintf(out, "Published %d results to %s\n", sent, sinks.subject)

	return nil
}
