package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/adminui/internal/shared"
	"github.com/desertthunder/adminui/internal/table"
	"github.com/desertthunder/adminui/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive member table.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)

	src, cleanup, err := r.buildSource(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	engine := table.NewEngine(shared.WithLogger(r.logger, "component", "table"))
	model := ui.NewModel(ctx, src, engine, r.logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
