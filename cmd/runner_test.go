package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/adminui/internal/shared"
	tu "github.com/desertthunder/adminui/internal/testing"
	"github.com/urfave/cli/v3"
)

// run executes args against a root command wired like main.
func run(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name: "adminui",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}},
			&cli.BoolFlag{Name: "verbose"},
		},
		Before:   runner.loadConfig,
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"adminui"}, args...))
}

func testConfig(t *testing.T) *shared.Config {
	t.Helper()
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "adminui.db")
	return config
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			source := &tu.MockSource{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Source:     source,
				Logger:     logger,
				Output:     output,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
			if runner.source != source {
				t.Error("expected source to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writes plain text without formatting", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("simple text")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "simple text" {
				t.Errorf("expected 'simple text', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("loadConfig", func(t *testing.T) {
		t.Run("reads existing file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte("[source]\nfile = \"roster.json\"\n"), 0644)

			runner := NewRunner(RunnerOpts{Source: &tu.MockSource{}, Output: &bytes.Buffer{}, Logger: shared.DiscardLogger()})
			if err := run(t, runner, "--config", path, "members", "list"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if runner.config.Source.File != "roster.json" {
				t.Errorf("expected file source from config, got %q", runner.config.Source.File)
			}
		})

		t.Run("missing file keeps defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Source: &tu.MockSource{}, Output: &bytes.Buffer{}, Logger: shared.DiscardLogger()})
			path := filepath.Join(t.TempDir(), "missing.toml")
			if err := run(t, runner, "--config", path, "members", "list"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if runner.config.Source.URL == "" {
				t.Error("expected default source url")
			}
		})

		t.Run("invalid file fails", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte("[source]\nurl = \"\"\nfile = \"\"\n"), 0644)

			runner := NewRunner(RunnerOpts{Source: &tu.MockSource{}, Output: &bytes.Buffer{}, Logger: shared.DiscardLogger()})
			err := run(t, runner, "--config", path, "members", "list")
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}

func TestMembersCommands(t *testing.T) {
	newRunner := func(n int) (*Runner, *bytes.Buffer) {
		output := &bytes.Buffer{}
		return NewRunner(RunnerOpts{
			Source: &tu.MockSource{Members: tu.MakeMembers(n)},
			Output: output,
			Logger: shared.DiscardLogger(),
		}), output
	}

	t.Run("list prints first page", func(t *testing.T) {
		runner, output := newRunner(25)
		if err := run(t, runner, "members", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "member10@example.com") || strings.Contains(result, "member11@example.com") {
			t.Errorf("expected members 1-10, got %s", result)
		}
		if !strings.Contains(result, "Page 1/3 · 25 matches") {
			t.Errorf("expected page footer, got %s", result)
		}
	})

	t.Run("list clamps page", func(t *testing.T) {
		runner, output := newRunner(25)
		if err := run(t, runner, "members", "list", "--page", "9"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Page 3/3") {
			t.Errorf("expected clamped page, got %s", output.String())
		}
	})

	t.Run("list with query as JSON", func(t *testing.T) {
		runner, output := newRunner(25)
		if err := run(t, runner, "members", "list", "--query", "admin", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result pageResult
		if err := json.Unmarshal(output.Bytes(), &result); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if result.Matches != 13 || result.Total != 25 || result.PageCount != 2 || len(result.Members) != 10 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("list with no matches", func(t *testing.T) {
		runner, output := newRunner(5)
		if err := run(t, runner, "members", "list", "-q", "nobody"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "No members found") || !strings.Contains(output.String(), "Page 1/1 · 0 matches") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("list load failure", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Source: &tu.MockSource{Err: shared.ErrAPIRequest},
			Output: &bytes.Buffer{},
			Logger: shared.DiscardLogger(),
		})
		err := run(t, runner, "members", "list")
		if !errors.Is(err, shared.ErrLoadFailed) {
			t.Errorf("expected ErrLoadFailed, got %v", err)
		}
	})

	t.Run("export filtered view to stdout", func(t *testing.T) {
		runner, output := newRunner(25)
		if err := run(t, runner, "members", "export", "--query", "member2", "--format", "csv"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		// header + member2, member20..member25
		if len(lines) != 8 {
			t.Errorf("expected 8 lines, got %d: %s", len(lines), output.String())
		}
	})

	t.Run("export to file", func(t *testing.T) {
		runner, output := newRunner(12)
		path := filepath.Join(t.TempDir(), "members.json")

		if err := run(t, runner, "members", "export", "-f", "json", "-o", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, path)
		if !strings.Contains(output.String(), "Exported 12 members") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("export unknown format", func(t *testing.T) {
		runner, _ := newRunner(1)
		err := run(t, runner, "members", "export", "--format", "xml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestCacheCommands(t *testing.T) {
	t.Run("cached fetch then show, history and clear", func(t *testing.T) {
		dir := t.TempDir()
		roster := filepath.Join(dir, "roster.json")
		os.WriteFile(roster, []byte(`[{"id": 1, "name": "Aaron"}, {"id": 2, "name": "Aishwarya"}]`), 0644)

		config := testConfig(t)
		config.Source.File = roster
		config.Source.Cache = true

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: config, Output: output, Logger: shared.DiscardLogger()})

		if err := run(t, runner, "members", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}

		output.Reset()
		if err := run(t, runner, "cache", "show"); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.Contains(output.String(), roster) || !strings.Contains(output.String(), "2 members") {
			t.Errorf("expected cached source, got %s", output.String())
		}

		output.Reset()
		if err := run(t, runner, "cache", "history", "--json"); err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if !strings.Contains(output.String(), `"member_count": 2`) {
			t.Errorf("expected recorded load, got %s", output.String())
		}

		output.Reset()
		if err := run(t, runner, "cache", "clear"); err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		if !strings.Contains(output.String(), "Removed 2 cached members") {
			t.Errorf("unexpected clear output: %s", output.String())
		}
	})

	t.Run("offline serves cached payload", func(t *testing.T) {
		dir := t.TempDir()
		roster := filepath.Join(dir, "roster.json")
		os.WriteFile(roster, []byte(`[{"id": "a", "name": "Aaron"}]`), 0644)

		config := testConfig(t)
		config.Source.File = roster
		config.Source.Cache = true

		runner := NewRunner(RunnerOpts{Config: config, Output: &bytes.Buffer{}, Logger: shared.DiscardLogger()})
		if err := run(t, runner, "members", "list"); err != nil {
			t.Fatalf("online list failed: %v", err)
		}

		os.Remove(roster)
		config.Source.Offline = true

		output := &bytes.Buffer{}
		runner = NewRunner(RunnerOpts{Config: config, Output: output, Logger: shared.DiscardLogger()})
		if err := run(t, runner, "members", "list"); err != nil {
			t.Fatalf("offline list failed: %v", err)
		}
		if !strings.Contains(output.String(), "Aaron") {
			t.Errorf("expected cached member, got %s", output.String())
		}
	})

	t.Run("empty cache", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Config: testConfig(t), Output: output, Logger: shared.DiscardLogger()})

		if err := run(t, runner, "cache", "show"); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.Contains(output.String(), "Cache is empty") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("database", func(t *testing.T) {
		config := testConfig(t)
		runner := NewRunner(RunnerOpts{Config: config, Output: &bytes.Buffer{}, Logger: shared.DiscardLogger()})

		if err := run(t, runner, "setup", "database"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertFileExists(t, config.Database.Path)
	})

	t.Run("config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: shared.DiscardLogger()})

		if err := run(t, runner, "--config", path, "setup", "config"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if content := tu.MustReadFile(t, path); !strings.Contains(content, "[source]") {
			t.Errorf("expected example config, got %s", content)
		}

		if err := run(t, runner, "--config", path, "setup", "config"); err == nil {
			t.Error("expected error when config already exists")
		}
	})
}
