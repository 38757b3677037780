package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/shared"
)

// MemberCache stores the last good payload per source, see repositories.MemberCacheRepository.
type MemberCache interface {
	Save(source string, members []models.Member, fetchedAt time.Time) error
	Load(source string) ([]models.Member, time.Time, error)
}

// LoadRecorder records fetch attempts, see repositories.LoadHistoryRepository.
type LoadRecorder interface {
	Record(entry *models.LoadRecord) error
}

// CachedSource wraps a [Source] with a payload cache and a load history.
//
// Cache and history write failures are logged and never fail the fetch.
type CachedSource struct {
	source  Source
	cache   MemberCache
	history LoadRecorder
	offline bool
	logger  *log.Logger
	now     func() time.Time
}

// NewCachedSource creates a [CachedSource]. When offline is set, Fetch serves the cached payload without calling source.
// history may be nil.
func NewCachedSource(source Source, cache MemberCache, history LoadRecorder, offline bool, logger *log.Logger) *CachedSource {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &CachedSource{
		source:  source,
		cache:   cache,
		history: history,
		offline: offline,
		logger:  logger,
		now:     time.Now,
	}
}

func (c *CachedSource) Name() string { return c.source.Name() }

func (c *CachedSource) Fetch(ctx context.Context) ([]models.Member, error) {
	if c.offline {
		members, fetchedAt, err := c.cache.Load(c.Name())
		c.record(len(members), err, true)
		if err != nil {
			return nil, fmt.Errorf("offline: %w", err)
		}
		c.logger.Info("serving cached members", "source", c.Name(), "count", len(members), "fetched_at", fetchedAt)
		return members, nil
	}

	members, err := c.source.Fetch(ctx)
	c.record(len(members), err, false)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Save(c.Name(), members, c.now()); err != nil {
		c.logger.Warn("failed to cache members", "source", c.Name(), "error", err)
	}
	return members, nil
}

func (c *CachedSource) record(count int, err error, fromCache bool) {
	if c.history == nil {
		return
	}

	entry := &models.LoadRecord{
		Source:    c.Name(),
		Count:     count,
		FromCache: fromCache,
		LoadedAt:  c.now(),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	if err := c.history.Record(entry); err != nil {
		c.logger.Warn("failed to record load", "source", c.Name(), "error", err)
	}
}
