// package formatter exports member lists to CSV, Markdown, plain text and JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/shared"
)

// Format is an export output format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}
}

// ParseFormat maps a flag value (case-insensitive, "markdown" and "text" accepted) to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Export renders members in format f.
func Export(f Format, members []models.Member) ([]byte, error) {
	switch f {
	case FormatCSV:
		return ExportToCSV(members)
	case FormatMarkdown:
		return ExportToMarkdown(members, "Members")
	case FormatText:
		return ExportToText(members)
	case FormatJSON:
		return ExportToJSON(members)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, f)
	}
}

// ExportToCSV converts members to CSV with columns: ID, Name, Email, Role
func ExportToCSV(members []models.Member) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Name", "Email", "Role"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range members {
		if err := writer.Write([]string{m.ID, m.Name, m.Email, m.Role}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts members to a Markdown document with a table under title.
//
// Pipes inside values are escaped so they cannot break the table.
func ExportToMarkdown(members []models.Member, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		fmt.Fprintf(&buf, "# %s\n\n", title)
	}
	fmt.Fprintf(&buf, "**Members**: %d\n\n", len(members))

	buf.WriteString("| ID | Name | Email | Role |\n")
	buf.WriteString("|----|------|-------|------|\n")
	for _, m := range members {
		fmt.Fprintf(&buf, "| %s | %s | %s | %s |\n", mdEscape(m.ID), mdEscape(m.Name), mdEscape(m.Email), mdEscape(m.Role))
	}

	return buf.Bytes(), nil
}

// ExportToText converts members to a numbered plain text list
func ExportToText(members []models.Member) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Members: %d\n\n", len(members))
	for i, m := range members {
		fmt.Fprintf(&buf, "%d. %s <%s> (%s) [%s]\n", i+1, m.Name, m.Email, m.Role, m.ID)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts members to an indented JSON array in the source payload shape.
func ExportToJSON(members []models.Member) ([]byte, error) {
	if members == nil {
		members = []models.Member{}
	}

	data, err := json.MarshalIndent(members, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteExport renders members in format f and writes them to path, creating parent directories.
func WriteExport(f Format, members []models.Member, path string) error {
	data, err := Export(f, members)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", f, err)
	}
	return nil
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
