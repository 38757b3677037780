package table

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/shared"
)

// PageSize is the number of members shown per page.
const PageSize = 10

// Source is anything that can produce the base record set, such as services.HTTPSource.
type Source interface {
	Fetch(ctx context.Context) ([]models.Member, error)
}

// Engine holds the roster table state. The zero value is not usable; see [NewEngine].
type Engine struct {
	members  []models.Member
	filtered []int // indexes into members, in record order
	selected map[string]struct{}
	query    string
	page     int
	logger   *log.Logger
}

// NewEngine creates an empty [Engine]. A nil logger discards engine debug output.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Engine{
		selected: make(map[string]struct{}),
		page:     1,
		logger:   logger,
	}
}

// Fetch loads the record set from src.
//
// On failure nothing is changed and the error wraps [shared.ErrLoadFailed]; callers retry by calling Fetch again.
func (e *Engine) Fetch(ctx context.Context, src Source) error {
	members, err := src.Fetch(ctx)
	if err != nil {
		e.logger.Warn("member fetch failed", "error", err)
		return fmt.Errorf("%w: %w", shared.ErrLoadFailed, err)
	}
	e.Load(members)
	return nil
}

// Load replaces the record set and resets the query, selection, and page.
func (e *Engine) Load(members []models.Member) {
	e.members = make([]models.Member, len(members))
	for i, m := range members {
		m.Editing = false
		e.members[i] = m
	}
	e.query = ""
	clear(e.selected)
	e.page = 1
	e.refresh()
	e.logger.Debug("members loaded", "count", len(e.members))
}

// SetFilterQuery filters the view to members matching text and returns to the first page.
//
// The selection is kept as is, including ids that the new query hides.
func (e *Engine) SetFilterQuery(text string) {
	e.query = text
	e.page = 1
	e.refresh()
	e.logger.Debug("filter applied", "query", text, "matches", len(e.filtered))
}

// ToggleSelect flips the selection of id. Ids outside the filtered view are ignored.
func (e *Engine) ToggleSelect(id string) {
	if !e.visible(id) {
		return
	}
	if _, ok := e.selected[id]; ok {
		delete(e.selected, id)
	} else {
		e.selected[id] = struct{}{}
	}
}

// ToggleSelectAll clears the selection when it is exactly the (non-empty) filtered view,
// otherwise replaces it with the filtered view.
func (e *Engine) ToggleSelectAll() {
	if e.AllSelected() {
		clear(e.selected)
		return
	}
	clear(e.selected)
	for _, i := range e.filtered {
		e.selected[e.members[i].ID] = struct{}{}
	}
}

// DeleteSelected removes every selected member, including selected members hidden by the query,
// clears the selection, and returns the number of members removed.
func (e *Engine) DeleteSelected() int {
	if len(e.selected) == 0 {
		return 0
	}

	removed := e.remove(func(m models.Member) bool {
		_, ok := e.selected[m.ID]
		return ok
	})
	clear(e.selected)
	e.refresh()
	e.logger.Debug("deleted selected members", "removed", removed, "remaining", len(e.members))
	return removed
}

// DeleteRow removes the member with id and drops it from the selection.
// It reports whether a member was removed.
func (e *Engine) DeleteRow(id string) bool {
	if e.index(id) < 0 {
		return false
	}

	e.remove(func(m models.Member) bool { return m.ID == id })
	delete(e.selected, id)
	e.refresh()
	e.logger.Debug("deleted member", "id", id, "remaining", len(e.members))
	return true
}

// BeginEdit marks the member with id as being edited.
func (e *Engine) BeginEdit(id string) {
	e.setEditing(id, true)
}

// CommitEdit leaves edit mode for the member with id. Values written by [Engine.SetField] are kept.
func (e *Engine) CommitEdit(id string) {
	e.setEditing(id, false)
}

// SetField writes value into field f of the member with id.
//
// The write is accepted whether or not the member is in edit mode.
func (e *Engine) SetField(id string, f models.Field, value string) {
	i := e.index(id)
	if i < 0 {
		return
	}
	e.members[i].SetField(f, value)
	e.refresh()
}

// SetPage moves to page, clamped into [1, PageCount].
func (e *Engine) SetPage(page int) {
	e.page = page
	e.clampPage()
}

func (e *Engine) FirstPage() { e.SetPage(1) }
func (e *Engine) LastPage()  { e.SetPage(e.PageCount()) }
func (e *Engine) NextPage()  { e.SetPage(e.page + 1) }
func (e *Engine) PrevPage()  { e.SetPage(e.page - 1) }

func (e *Engine) setEditing(id string, editing bool) {
	if i := e.index(id); i >= 0 {
		e.members[i].Editing = editing
	}
}

// remove drops members matching fn in place and returns how many were dropped.
func (e *Engine) remove(fn func(models.Member) bool) int {
	kept := e.members[:0]
	for _, m := range e.members {
		if !fn(m) {
			kept = append(kept, m)
		}
	}
	removed := len(e.members) - len(kept)
	clear(e.members[len(kept):])
	e.members = kept
	return removed
}

// refresh recomputes the filtered view and re-clamps the page.
func (e *Engine) refresh() {
	e.filtered = e.filtered[:0]
	for i, m := range e.members {
		if m.Matches(e.query) {
			e.filtered = append(e.filtered, i)
		}
	}
	e.clampPage()
}

func (e *Engine) clampPage() {
	e.page = max(1, min(e.page, e.PageCount()))
}

func (e *Engine) index(id string) int {
	for i, m := range e.members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) visible(id string) bool {
	for _, i := range e.filtered {
		if e.members[i].ID == id {
			return true
		}
	}
	return false
}
