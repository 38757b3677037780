// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// tuiCommand returns the top-level TUI command for the interactive member table.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive member table",
		Action:  r.TUI,
	}
}

// membersCommand handles non-interactive roster queries
func membersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "members",
		Aliases: []string{"m"},
		Usage:   "Query the member roster",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "Print one page of members",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Case-insensitive filter on name, email or role",
					},
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "Page to print, clamped to the available pages",
						Value:   1,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
					},
				},
				Action: r.MembersList,
			},
			{
				Name:  "export",
				Usage: "Export every member matching the query",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Case-insensitive filter on name, email or role",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, md, txt or json",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (defaults to stdout)",
					},
				},
				Action: r.MembersExport,
			},
		},
	}
}

// cacheCommand inspects the payload cache and load history
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect cached member payloads and load history",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "List cached sources",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheShow,
			},
			{
				Name:  "clear",
				Usage: "Remove cached payloads",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Only clear this source (defaults to all)",
					},
				},
				Action: r.CacheClear,
			},
			{
				Name:  "history",
				Usage: "Show recent load attempts",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheHistory,
			},
		},
	}
}

func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "config",
				Usage:  "Write config.toml from the built-in defaults",
				Action: r.SetupConfig,
			},
		},
	}
}

// serveCommand runs the local roster fixture server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve a sample member roster over HTTP for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (defaults to server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (defaults to server.port)",
			},
			&cli.StringFlag{
				Name:  "members",
				Usage: "Serve this JSON file instead of the built-in sample",
			},
		},
		Action: r.Serve,
	}
}
