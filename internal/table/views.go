package table

import (
	"github.com/desertthunder/adminui/internal/models"
)

// Members returns a copy of the record set.
func (e *Engine) Members() []models.Member {
	out := make([]models.Member, len(e.members))
	copy(out, e.members)
	return out
}

// Len returns the size of the record set.
func (e *Engine) Len() int { return len(e.members) }

// Member looks up a member of the record set by id.
func (e *Engine) Member(id string) (models.Member, bool) {
	if i := e.index(id); i >= 0 {
		return e.members[i], true
	}
	return models.Member{}, false
}

// FilteredView returns the members matching the current query, in record order.
func (e *Engine) FilteredView() []models.Member {
	return e.collect(e.filtered)
}

// FilteredLen returns the size of the filtered view.
func (e *Engine) FilteredLen() int { return len(e.filtered) }

// CurrentPageSlice returns the [PageSize] window of the filtered view for the current page.
// The last page may be shorter.
func (e *Engine) CurrentPageSlice() []models.Member {
	start := (e.page - 1) * PageSize
	if start >= len(e.filtered) {
		return []models.Member{}
	}
	end := min(start+PageSize, len(e.filtered))
	return e.collect(e.filtered[start:end])
}

// Query returns the current search text.
func (e *Engine) Query() string { return e.query }

// CurrentPage returns the 1-based current page.
func (e *Engine) CurrentPage() int { return e.page }

// PageCount returns max(1, ceil(len(FilteredView) / PageSize)).
func (e *Engine) PageCount() int {
	return max(1, (len(e.filtered)+PageSize-1)/PageSize)
}

// Selection returns the selected ids in record order.
func (e *Engine) Selection() []string {
	ids := make([]string, 0, len(e.selected))
	for _, m := range e.members {
		if _, ok := e.selected[m.ID]; ok {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// IsSelected reports whether id is selected.
func (e *Engine) IsSelected(id string) bool {
	_, ok := e.selected[id]
	return ok
}

// SelectedCount returns the size of the selection.
func (e *Engine) SelectedCount() int { return len(e.selected) }

// AllSelected reports whether the selection is non-empty and equal to the ids of the filtered view.
// This is the checked state of the select-all checkbox.
func (e *Engine) AllSelected() bool {
	if len(e.selected) == 0 || len(e.selected) != len(e.filtered) {
		return false
	}
	for _, i := range e.filtered {
		if _, ok := e.selected[e.members[i].ID]; !ok {
			return false
		}
	}
	return true
}

// CanDelete reports whether delete-selected has anything to act on.
func (e *Engine) CanDelete() bool { return len(e.selected) > 0 }

// HasPrev reports whether there is a page before the current one.
func (e *Engine) HasPrev() bool { return e.page > 1 }

// HasNext reports whether there is a page after the current one.
func (e *Engine) HasNext() bool { return e.page < e.PageCount() }

func (e *Engine) collect(idx []int) []models.Member {
	out := make([]models.Member, len(idx))
	for j, i := range idx {
		out[j] = e.members[i]
	}
	return out
}
