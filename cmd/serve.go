package main

import (
	"context"

	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/server"
	"github.com/desertthunder/adminui/internal/services"
	"github.com/desertthunder/adminui/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve runs the roster fixture server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		cfg.Port = int(port)
	}

	var members []models.Member
	if path := cmd.String("members"); path != "" {
		loaded, err := services.NewFileSource(path).Fetch(ctx)
		if err != nil {
			return err
		}
		members = loaded
	}

	srv, err := server.New(server.Options{
		Config:  cfg,
		Members: members,
		Logger:  shared.WithLogger(r.logger, "component", "server"),
	})
	if err != nil {
		return err
	}

	r.writePlain("Serving members at http://%s/members.json (ctrl+c to stop)\n", cfg.Addr())
	return srv.ListenAndServe(ctx)
}
