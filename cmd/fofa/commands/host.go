package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/spf13/cobra"
)

// NewHostCommand creates the host detail command.
func NewHostCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "host HOST",
		Short:   "Show host details",
		Long:    "Show the aggregated record of a single host or IP address",
		Example: `  fofa host 1.1.1.1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return constants.ErrHostRequired
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := ClientFactory()
			if err != nil {
				return err
			}

			host, err := client.Host(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get host: %w", err)
			}

			out := cmd.OutOrStdout()

			done, err := renderStructured(out, format, host.Raw, host)
			if err != nil || done {
				return err
			}

			heading(out, "Host: %s", args[0])

			return propertyTable(out, [][]string{
				{"Host", host.Host},
				{"IP", host.IP},
				{"ASN", fmt.Sprintf("%d", host.ASN)},
				{"Organization", host.Org},
				{"Country", strings.TrimSpace(host.CountryName + " " + host.CountryCode)},
				{"Ports", joinInts(host.Ports)},
				{"Protocols", strings.Join(host.Protocols, ", ")},
				{"Categories", strings.Join(host.Categories, ", ")},
				{"Products", strings.Join(host.Products, ", ")},
				{"Updated", host.UpdateTime},
			})
		},
	}
}

// NewHostsCommand creates the batch host lookup command.
func NewHostsCommand() *cobra.Command {
	var hostList []string

	cmd := &cobra.Command{
		Use:   "hosts [HOST...]",
		Short: "Look up several hosts at once",
		Long:  "Look up several hosts in one request. Hosts come from arguments, --hosts, or both.",
		Example: `  fofa hosts 1.1.1.1 8.8.8.8
  fofa hosts --hosts example.com,example.org`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hosts := append(append([]string{}, args...), hostList...)
			if len(hosts) == 0 {
				return constants.ErrHostRequired
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := ClientFactory()
			if err != nil {
				return err
			}

			result, err := client.Hosts(context.Background(), hosts)
			if err != nil {
				return fmt.Errorf("failed to look up hosts: %w", err)
			}

			out := cmd.OutOrStdout()

			done, err := renderStructured(out, format, result.Raw, result)
			if err != nil || done {
				return err
			}

			heading(out, "Hosts: %d requested, %d returned", len(hosts), len(result.Results))

			return itemsTable(out, "Result", result.Results)
		},
	}

	cmd.Flags().StringSliceVar(&hostList, "hosts", nil, "hosts to look up (comma-separated)")

	return cmd
}
