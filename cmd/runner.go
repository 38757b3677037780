package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/adminui/internal/repositories"
	"github.com/desertthunder/adminui/internal/services"
	"github.com/desertthunder/adminui/internal/shared"
	"github.com/desertthunder/adminui/internal/table"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	source     services.Source
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Source     services.Source // Overrides the source built from Config
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		source:     opts.Source,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, membersCommand, cacheCommand, setupCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig reads the --config file when it exists and applies the log level.
//
// A missing file keeps the current (default) config.
func (r *Runner) loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return ctx, err
			}
			r.config = config
		} else if !errors.Is(err, os.ErrNotExist) {
			return ctx, fmt.Errorf("failed to stat config: %w", err)
		}
	}

	level := r.config.Log.Level
	if cmd.Bool("verbose") {
		level = "debug"
	}
	shared.SetLogLevel(r.logger, shared.ParseLogLevel(level))
	return ctx, nil
}

// openDatabase opens the configured database with migrations applied.
func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// buildSource returns the member source for the current config and a cleanup func.
//
// With source.cache set the source is wrapped in a [services.CachedSource] backed by the database.
func (r *Runner) buildSource(ctx context.Context) (services.Source, func(), error) {
	if r.source != nil {
		return r.source, func() {}, nil
	}

	cfg := r.config.Source
	var src services.Source
	if cfg.File != "" {
		src = services.NewFileSource(cfg.File)
	} else {
		client := services.NewHTTPClient(ctx, cfg.Timeout, cfg.OAuth)
		src = services.NewHTTPSource(cfg.URL, client, services.NewLimiter(cfg.MinInterval))
	}

	if !cfg.Cache {
		return src, func() {}, nil
	}

	db, err := r.openDatabase()
	if err != nil {
		return nil, nil, err
	}

	cached := services.NewCachedSource(
		src,
		repositories.NewMemberCacheRepository(db),
		repositories.NewLoadHistoryRepository(db),
		cfg.Offline,
		shared.WithLogger(r.logger, "component", "cache"),
	)
	return cached, func() { db.Close() }, nil
}

// loadEngine fetches the roster into a new [table.Engine].
func (r *Runner) loadEngine(ctx context.Context) (*table.Engine, error) {
	src, cleanup, err := r.buildSource(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	engine := table.NewEngine(shared.WithLogger(r.logger, "component", "table"))
	r.logger.Debug("fetching members", "source", src.Name())
	if err := engine.Fetch(ctx, src); err != nil {
		return nil, err
	}
	return engine, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
