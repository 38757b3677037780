package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/shared"
	th "github.com/desertthunder/adminui/internal/testing"
)

func sampleMembers() []models.Member {
	return []models.Member{
		{ID: "1", Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member"},
		{ID: "2", Name: "Aishwarya Naik", Email: "aishwarya@mailinator.com", Role: "admin"},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleMembers())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "ID,Name,Email,Role\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,Aaron Miles,aaron@mailinator.com,member") {
			t.Errorf("CSV missing first member, got: %s", output)
		}
		if lines := strings.Count(output, "\n"); lines != 3 {
			t.Errorf("expected 3 lines, got %d", lines)
		}
	})

	t.Run("ExportToCSV quotes commas", func(t *testing.T) {
		data, err := ExportToCSV([]models.Member{{ID: "9", Name: "Miles, Aaron", Role: "member"}})
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}
		if !strings.Contains(string(data), `"Miles, Aaron"`) {
			t.Errorf("expected quoted name, got: %s", data)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		members := append(sampleMembers(), models.Member{ID: "3", Name: "Pipe|Name", Role: "member"})

		data, err := ExportToMarkdown(members, "Team")
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Team",
			"**Members**: 3",
			"| ID | Name | Email | Role |",
			"| 2 | Aishwarya Naik | aishwarya@mailinator.com | admin |",
			`Pipe\|Name`,
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleMembers())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "Members: 2") {
			t.Errorf("Text missing count, got: %s", output)
		}
		if !strings.Contains(output, "2. Aishwarya Naik <aishwarya@mailinator.com> (admin) [2]") {
			t.Errorf("Text missing second member, got: %s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleMembers())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded []map[string]any
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded) != 2 || decoded[0]["id"] != "1" {
			t.Errorf("unexpected JSON: %s", data)
		}
		if _, ok := decoded[0]["Editing"]; ok {
			t.Error("editing flag must not be exported")
		}
	})

	t.Run("ExportToJSON empty", func(t *testing.T) {
		data, err := ExportToJSON(nil)
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("expected empty array, got %s", data)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"csv", FormatCSV},
		{"CSV", FormatCSV},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{"txt", FormatText},
		{"text", FormatText},
		{" json ", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("WithNestedPath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "members.csv")

		if err := WriteExport(FormatCSV, sampleMembers(), path); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}

		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.Contains(content, "Aaron Miles") {
			t.Errorf("file missing member, got: %s", content)
		}
	})

	t.Run("WithRelativePath", func(t *testing.T) {
		tempDir := t.TempDir()
		originalDir := th.MustGetwd(t)
		th.MustChdir(t, tempDir)
		defer th.MustChdir(t, originalDir)

		if err := WriteExport(FormatMarkdown, sampleMembers(), "members.md"); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		th.AssertFileExists(t, filepath.Join(tempDir, "members.md"))
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		err := WriteExport(Format("xml"), sampleMembers(), filepath.Join(t.TempDir(), "x"))
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}
