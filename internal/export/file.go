// Package export writes command results to files and message subjects.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/fofa-cli/internal/constants"
)

// WriteJSON writes the raw response body to path, indented.
func WriteJSON(path string, raw []byte) error {
	cleanPath, err := cleanExportPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer

	err = json.Indent(&buf, raw, "", constants.JSONIndent)
	if err != nil {
		return fmt.Errorf("failed to format JSON: %w", err)
	}

	buf.WriteByte('\n')

	err = os.WriteFile(cleanPath, buf.Bytes(), constants.ExportFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", cleanPath, err)
	}

	return nil
}

// WriteCSV writes a header of fields followed by rows. Every row must have
// one cell per field.
func WriteCSV(path string, fields []string, rows [][]string) error {
	cleanPath, err := cleanExportPath(path)
	if err != nil {
		return err
	}

	for i, row := range rows {
		if len(row) != len(fields) {
			return fmt.Errorf("row %d has %d cells for %d fields: %w", i+1, len(row), len(fields), constants.ErrRowFieldMismatch)
		}
	}

	file, err := os.OpenFile(cleanPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.ExportFilePerm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", cleanPath, err)
	}

	return writeCSV(file, cleanPath, fields, rows)
}

// writeCSV encodes into wc and closes it. A failed close is reported since
// buffered data may not have reached disk.
func writeCSV(wc io.WriteCloser, path string, fields []string, rows [][]string) (err error) {
	defer func() {
		closeErr := wc.Close()
		if closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close %s: %w", path, closeErr))
		}
	}()

	writer := csv.NewWriter(wc)

	err = writer.Write(fields)
	if err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}

	return nil
}

func cleanExportPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", constants.ErrEmptyExportPath
	}

	if strings.Contains(path, "..") {
		return "", fmt.Errorf("%s: %w", path, constants.ErrPathTraversalFound)
	}

	return filepath.Clean(path), nil
}
