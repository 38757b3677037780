// Package table implements the state engine behind the member roster table.
//
// An [Engine] owns the record set, the search query, the selection, per-member edit state, and the current page.
// Every command recomputes the derived views synchronously, always in the same order:
//
//  1. apply the mutation to the canonical record set
//  2. recompute the filtered view from the record set and the query
//  3. clamp the current page into [1, PageCount]
//
// Invariants held after every command:
//   - 1 <= CurrentPage() <= max(1, ceil(len(FilteredView()) / [PageSize]))
//   - every selected id exists in the record set
//   - select-all is evaluated against the filtered view, never the whole record set
//
// Commands that reference a missing id (BeginEdit, CommitEdit, SetField, ToggleSelect, DeleteRow) are silent no-ops,
// since they usually come from a stale row in the presentation layer.
// The engine is not safe for concurrent use; callers serialize commands, which bubbletea's update loop does.
package table
