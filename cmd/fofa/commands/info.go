package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewInfoCommand creates the account info command.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "info",
		Aliases: []string{"me", "account"},
		Short:   "Show account information",
		Long:    "Show the account tied to the configured credentials and its remaining quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := ClientFactory()
			if err != nil {
				return err
			}

			info, err := client.AccountInfo(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get account info: %w", err)
			}

			out := cmd.OutOrStdout()

			done, err := renderStructured(out, format, info.Raw, info)
			if err != nil || done {
				return err
			}

			return propertyTable(out, [][]string{
				{"Email", info.Email},
				{"Username", info.Username},
				{"Category", info.Category},
				{"VIP", strconv.FormatBool(info.IsVIP)},
				{"VIP Level", strconv.Itoa(int(info.VIPLevel))},
				{"F Coin", strconv.Itoa(int(info.FCoin))},
				{"FOFA Points", strconv.Itoa(int(info.FofaPoint))},
				{"Remaining Queries", strconv.Itoa(int(info.RemainAPIQuery))},
				{"Remaining Data", strconv.Itoa(int(info.RemainAPIData))},
			})
		},
	}
}

// NewProductsCommand creates the product catalog command.
func NewProductsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List known products",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := ClientFactory()
			if err != nil {
				return err
			}

			result, err := client.Products(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}

			out := cmd.OutOrStdout()

			done, err := renderStructured(out, format, result.Raw, result)
			if err != nil || done {
				return err
			}

			return itemsTable(out, "Products", result.Products)
		},
	}
}

// NewAppsCommand creates the application catalog command.
func NewAppsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apps",
		Short: "List known applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}

			client, err := ClientFactory()
			if err != nil {
				return err
			}

			result, err := client.Apps(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list apps: %w", err)
			}

			out := cmd.OutOrStdout()

			done, err := renderStructured(out, format, result.Raw, result)
			if err != nil || done {
				return err
			}

			return itemsTable(out, "Apps", result.Apps)
		},
	}
}
