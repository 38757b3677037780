package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/adminui/internal/formatter"
	"github.com/desertthunder/adminui/internal/models"
	"github.com/urfave/cli/v3"
)

// pageResult is the JSON shape of `members list --json`.
type pageResult struct {
	Query     string          `json:"query"`
	Page      int             `json:"page"`
	PageCount int             `json:"page_count"`
	Matches   int             `json:"matches"`
	Total     int             `json:"total"`
	Members   []models.Member `json:"members"`
}

// MembersList fetches the roster and prints one page of the filtered view.
func (r *Runner) MembersList(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.loadEngine(ctx)
	if err != nil {
		return err
	}

	engine.SetFilterQuery(cmd.String("query"))
	engine.SetPage(int(cmd.Int("page")))

	page := engine.CurrentPageSlice()
	if cmd.Bool("json") {
		if page == nil {
			page = []models.Member{}
		}
		return r.writeJSON(pageResult{
			Query:     engine.Query(),
			Page:      engine.CurrentPage(),
			PageCount: engine.PageCount(),
			Matches:   engine.FilteredLen(),
			Total:     engine.Len(),
			Members:   page,
		}, cmd.Bool("pretty"))
	}

	if len(page) == 0 {
		r.writePlain("No members found\n")
	} else {
		r.writePlain("%-6s %-24s %-32s %s\n", "ID", "NAME", "EMAIL", "ROLE")
		r.writePlain("%s\n", strings.Repeat("─", 72))
		for _, m := range page {
			if err := r.writePlain("%-6s %-24s %-32s %s\n", m.ID, m.Name, m.Email, m.Role); err != nil {
				return err
			}
		}
	}

	return r.writePlainln("Page %d/%d · %d matches", engine.CurrentPage(), engine.PageCount(), engine.FilteredLen())
}

// MembersExport fetches the roster and exports the whole filtered view.
func (r *Runner) MembersExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	engine, err := r.loadEngine(ctx)
	if err != nil {
		return err
	}
	engine.SetFilterQuery(cmd.String("query"))
	members := engine.FilteredView()

	output := cmd.String("output")
	if output == "" {
		data, err := formatter.Export(format, members)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := formatter.WriteExport(format, members, output); err != nil {
		return err
	}
	r.logger.Info("exported members", "count", len(members), "format", format, "path", output)
	return r.writePlain("✓ Exported %d members to %s\n", len(members), output)
}
