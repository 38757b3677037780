// Package ui implements the interactive member table using bubbletea's Elm architecture.
//
// The TUI moves through three views:
//  1. [LoadingView] : a spinner while the roster is fetched
//  2. [TableView] : the paginated, filterable, selectable member table
//  3. [ErrorView] : the load failure, with retry
//
// Inside [TableView] the model is in one of three modes. [NormalMode] maps keys to table commands,
// [SearchMode] re-filters on every keystroke and [EditMode] writes every keystroke to the edited member.
//
// All state lives in a [table.Engine]; the [Model] only keeps the row cursor and input widgets.
// The fetch runs inside a [tea.Cmd] and its result is applied on the update loop, so a load never
// interleaves with another command.
package ui
