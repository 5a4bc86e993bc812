package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/fivetwenty-io/fofa-cli/internal/auth"
	"github.com/fivetwenty-io/fofa-cli/internal/constants"
	"github.com/fivetwenty-io/fofa-cli/internal/logging"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofa"
	"github.com/fivetwenty-io/fofa-cli/pkg/fofaclient"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Viper keys shared by the commands.
const (
	KeyAPI     = "api"
	KeyOutput  = "output"
	KeyVerbose = "verbose"
	KeyNoColor = "no-color"
	KeyConfig  = "config"
)

// ClientFactory builds the client used by commands. Tests replace it.
var ClientFactory = CreateClient

// CreateClient resolves credentials from viper and builds a client.
func CreateClient() (fofa.Client, error) {
	creds, err := auth.Resolve(viper.GetViper())
	if err != nil {
		return nil, err
	}

	verbose := viper.GetBool(KeyVerbose)

	return fofaclient.New(&fofa.Config{
		BaseURL:     viper.GetString(KeyAPI),
		Credentials: creds,
		Logger:      logging.New(os.Stderr, verbose),
		Debug:       verbose,
	})
}

// ConfigureColor disables color when asked to or when stdout is not a terminal.
func ConfigureColor() {
	if viper.GetBool(KeyNoColor) || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}
}

// PrintError writes a single-line error to w.
func PrintError(w io.Writer, err error) {
	prefix := color.New(color.FgRed, color.Bold).Sprint("Error:")
	_, _ = fmt.Fprintf(w, "%s %s\n", prefix, strings.ReplaceAll(err.Error(), "\n", " "))
}

func outputFormat() (string, error) {
	output := viper.GetString(KeyOutput)
	switch output {
	case "", constants.FormatTable:
		return constants.FormatTable, nil
	case constants.FormatJSON, constants.FormatYAML:
		return output, nil
	default:
		return "", fmt.Errorf("%q: %w", output, constants.ErrUnknownOutput)
	}
}

func heading(w io.Writer, format string, args ...interface{}) {
	_, _ = color.New(color.Bold).Fprintf(w, format+"\n", args...)
}

// writeRawJSON prints the response body as received, indented.
func writeRawJSON(w io.Writer, raw []byte) error {
	var buf bytes.Buffer

	err := json.Indent(&buf, raw, "", constants.JSONIndent)
	if err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}

	buf.WriteByte('\n')

	_, err = w.Write(buf.Bytes())

	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", constants.JSONIndent)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

// renderStructured handles the json and yaml formats. It reports false for table.
func renderStructured(w io.Writer, format string, raw []byte, v interface{}) (bool, error) {
	switch format {
	case constants.FormatJSON:
		if raw != nil {
			return true, writeRawJSON(w, raw)
		}

		return true, writeJSON(w, v)
	case constants.FormatYAML:
		return true, writeYAML(w, v)
	default:
		return false, nil
	}
}

func propertyTable(w io.Writer, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, row := range rows {
		_ = table.Append(row[0], row[1])
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func resultsTable(w io.Writer, fields []string, rows [][]string, limit int) error {
	if len(rows) == 0 {
		_, _ = io.WriteString(w, "No results found\n")

		return nil
	}

	header := []string{"#"}
	if len(fields) > 0 {
		header = append(header, fields...)
	} else {
		header = append(header, "Result")
	}

	table := tablewriter.NewWriter(w)
	table.Header(toAny(header)...)

	for i, row := range limitRows(rows, limit) {
		cells := []interface{}{fmt.Sprintf("%d", i+1)}
		for _, cell := range row {
			cells = append(cells, truncate(cell, constants.MaxCellWidth))
		}

		_ = table.Append(cells...)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func itemsTable(w io.Writer, header string, items []interface{}) error {
	if len(items) == 0 {
		_, _ = fmt.Fprintf(w, "No %s found\n", strings.ToLower(header))

		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", header)

	for i, item := range items {
		_ = table.Append(fmt.Sprintf("%d", i+1), truncate(formatItem(item), constants.MaxCellWidth))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatItem(item interface{}) string {
	if text, ok := item.(string); ok {
		return text
	}

	encoded, err := json.Marshal(item)
	if err != nil {
		return fmt.Sprintf("%v", item)
	}

	return string(encoded)
}

func limitRows(rows [][]string, limit int) [][]string {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}

	return rows
}

func toAny(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, value := range values {
		out[i] = value
	}

	return out
}

func truncate(value string, width int) string {
	runes := []rune(value)
	if len(runes) <= width {
		return value
	}

	return string(runes[:width-3]) + "..."
}

// maskSecret keeps the first few characters of a secret.
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) <= constants.VisibleSecretChars {
		return constants.MaskedValue
	}

	return secret[:constants.VisibleSecretChars] + constants.MaskedValue
}

func joinInts(values []fofa.Int) string {
	parts := make([]string, 0, len(values))
	for _, value := range values {
		parts = append(parts, fmt.Sprintf("%d", value))
	}

	return strings.Join(parts, ", ")
}

func validatePaging(page, size int) error {
	if size <= 0 {
		return constants.ErrInvalidSize
	}

	if page <= 0 {
		return constants.ErrInvalidPage
	}

	return nil
}
