package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up           key.Binding
	down         key.Binding
	toggle       key.Binding
	toggleAll    key.Binding
	deleteMarked key.Binding
	deleteRow    key.Binding
	edit         key.Binding
	search       key.Binding
	prevPage     key.Binding
	nextPage     key.Binding
	firstPage    key.Binding
	lastPage     key.Binding
	nextField    key.Binding
	prevField    key.Binding
	done         key.Binding
	back         key.Binding
	reload       key.Binding
	help         key.Binding
	quit         key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:       key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "select")),
		toggleAll:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		deleteMarked: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete selected")),
		deleteRow:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete row")),
		edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		prevPage:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		nextPage:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		firstPage:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first page")),
		lastPage:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last page")),
		nextField:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		prevField:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		done:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.search, k.edit, k.deleteRow, k.prevPage, k.nextPage, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle, k.toggleAll},
		{k.deleteRow, k.deleteMarked, k.edit, k.search},
		{k.prevPage, k.nextPage, k.firstPage, k.lastPage},
		{k.reload, k.help, k.quit},
	}
}

// searchHelp is shown while the search box has focus.
func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{k.done, k.back}
}

// editHelp is shown while a member is being edited.
func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.nextField, k.prevField, k.done}
}
