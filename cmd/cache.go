package main

import (
	"context"
	"time"

	"github.com/desertthunder/adminui/internal/repositories"
	"github.com/urfave/cli/v3"
)

// CacheShow lists the cached sources with their row counts.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	sources, err := repositories.NewMemberCacheRepository(db).Sources()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(sources, true)
	}

	if len(sources) == 0 {
		return r.writePlain("Cache is empty\n")
	}

	r.writePlainHeader("Cached sources")
	for _, s := range sources {
		r.writePlain("%4d members  %s  %s\n", s.Count, s.FetchedAt.Local().Format(time.DateTime), s.Source)
	}
	return nil
}

// CacheClear removes cached payloads for one source or all of them.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	source := cmd.String("source")
	n, err := repositories.NewMemberCacheRepository(db).Clear(source)
	if err != nil {
		return err
	}

	r.logger.Info("cache cleared", "source", source, "rows", n)
	return r.writePlain("✓ Removed %d cached members\n", n)
}

// CacheHistory prints the most recent load attempts.
func (r *Runner) CacheHistory(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := repositories.NewLoadHistoryRepository(db).List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	if len(records) == 0 {
		return r.writePlain("No loads recorded\n")
	}

	r.writePlainHeader("Load history")
	for _, rec := range records {
		status := "ok"
		switch {
		case rec.Failed():
			status = "failed: " + rec.Error
		case rec.FromCache:
			status = "cache"
		}
		r.writePlain("%s  %4d  %-40s %s\n", rec.LoadedAt.Local().Format(time.DateTime), rec.Count, rec.Source, status)
	}
	return nil
}
