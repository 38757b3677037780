package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/services"
	"github.com/desertthunder/adminui/internal/shared"
	"github.com/desertthunder/adminui/internal/table"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoadingView ViewState = iota
	TableView
	ErrorView
)

// Mode is the input mode inside [TableView].
type Mode int

const (
	NormalMode Mode = iota
	SearchMode
	EditMode
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	mode    Mode
	source  services.Source
	engine  *table.Engine
	logger  *log.Logger
	spinner spinner.Model
	search  textinput.Model
	inputs  []textinput.Model // one per models.Fields()
	focus   int
	editID  string
	cursor  int
	status  string
	err     error
	width   int
	height  int
	help    help.Model
	keys    keyMap
}

// NewModel creates a new TUI model that loads members from source into engine.
func NewModel(ctx context.Context, source services.Source, engine *table.Engine, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.DiscardLogger()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search by name, email or role"

	fields := models.Fields()
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-6s ", f.Title()+":")
		inputs[i] = in
	}

	return &Model{
		ctx:     ctx,
		view:    LoadingView,
		source:  source,
		engine:  engine,
		logger:  logger,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.cursor)),
		search:  search,
		inputs:  inputs,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init starts the spinner and the first fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

// Err returns the last load failure, if any.
func (m *Model) Err() error { return m.err }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.view != LoadingView {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		switch msg.kind {
		case MsgMembersLoaded:
			return m.handleLoaded(msg.data.(membersLoaded))
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.view {
		case LoadingView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
		case ErrorView:
			return m.handleErrorKeys(msg)
		case TableView:
			switch m.mode {
			case SearchMode:
				return m.handleSearchKeys(msg)
			case EditMode:
				return m.handleEditKeys(msg)
			default:
				return m.handleTableKeys(msg)
			}
		}
	}

	return m, nil
}

func (m *Model) handleLoaded(res membersLoaded) (tea.Model, tea.Cmd) {
	if res.err != nil {
		m.err = fmt.Errorf("%w: %w", shared.ErrLoadFailed, res.err)
		m.logger.Error("member fetch failed", "source", m.source.Name(), "error", res.err)
		m.view = ErrorView
		return m, nil
	}

	m.engine.Load(res.members)
	m.err = nil
	m.mode = NormalMode
	m.cursor = 0
	m.search.SetValue("")
	m.search.Blur()
	m.view = TableView
	m.status = fmt.Sprintf("Loaded %d members", m.engine.Len())
	m.logger.Info("members loaded", "source", m.source.Name(), "count", m.engine.Len())
	return m, nil
}

func (m *Model) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.back):
		if m.engine.Len() > 0 {
			m.view = TableView
			m.status = "Showing previously loaded members"
		}
	}
	return m, nil
}

func (m *Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := m.engine

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.cursor--
	case key.Matches(msg, m.keys.down):
		m.cursor++
	case key.Matches(msg, m.keys.toggle):
		if id, ok := m.currentID(); ok {
			e.ToggleSelect(id)
		}
	case key.Matches(msg, m.keys.toggleAll):
		e.ToggleSelectAll()
	case key.Matches(msg, m.keys.deleteMarked):
		if !e.CanDelete() {
			return m, nil
		}
		n := e.DeleteSelected()
		m.status = fmt.Sprintf("Deleted %d members", n)
	case key.Matches(msg, m.keys.deleteRow):
		if id, ok := m.currentID(); ok && e.DeleteRow(id) {
			m.status = fmt.Sprintf("Deleted member %s", id)
		}
	case key.Matches(msg, m.keys.edit):
		return m, m.beginEdit()
	case key.Matches(msg, m.keys.search):
		m.mode = SearchMode
		m.status = ""
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.prevPage):
		if e.HasPrev() {
			e.PrevPage()
		}
	case key.Matches(msg, m.keys.nextPage):
		if e.HasNext() {
			e.NextPage()
		}
	case key.Matches(msg, m.keys.firstPage):
		e.FirstPage()
	case key.Matches(msg, m.keys.lastPage):
		e.LastPage()
	case key.Matches(msg, m.keys.reload):
		return m, m.reload()
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.clampCursor()
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.done, m.keys.back) {
		m.mode = NormalMode
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.engine.Query() {
		m.engine.SetFilterQuery(m.search.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.done, m.keys.back):
		m.commitEdit()
		return m, nil
	case key.Matches(msg, m.keys.nextField):
		return m, m.focusField(m.focus + 1)
	case key.Matches(msg, m.keys.prevField):
		return m, m.focusField(m.focus - 1)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	field := models.Fields()[m.focus]
	value := m.inputs[m.focus].Value()
	if cur, ok := m.engine.Member(m.editID); ok && cur.Field(field) != value {
		m.engine.SetField(m.editID, field, value)
		m.clampCursor()
	}
	return m, cmd
}

func (m *Model) beginEdit() tea.Cmd {
	id, ok := m.currentID()
	if !ok {
		return nil
	}
	member, _ := m.engine.Member(id)

	m.engine.BeginEdit(id)
	m.editID = id
	m.mode = EditMode
	m.status = ""
	for i, f := range models.Fields() {
		m.inputs[i].SetValue(member.Field(f))
		m.inputs[i].CursorEnd()
	}
	return m.focusField(0)
}

func (m *Model) commitEdit() {
	m.engine.CommitEdit(m.editID)
	m.inputs[m.focus].Blur()
	m.status = fmt.Sprintf("Saved member %s", m.editID)
	m.editID = ""
	m.mode = NormalMode
	m.clampCursor()
}

func (m *Model) focusField(i int) tea.Cmd {
	n := len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = ((i % n) + n) % n
	return m.inputs[m.focus].Focus()
}

func (m *Model) reload() tea.Cmd {
	m.view = LoadingView
	m.mode = NormalMode
	m.status = ""
	return tea.Batch(m.spinner.Tick, m.fetch())
}

// fetch runs the source off the update loop; the result arrives as [MsgMembersLoaded].
func (m *Model) fetch() tea.Cmd {
	ctx, src := m.ctx, m.source
	return func() tea.Msg {
		members, err := src.Fetch(ctx)
		return membersLoadedMsg(members, err)
	}
}

func (m *Model) currentID() (string, bool) {
	page := m.engine.CurrentPageSlice()
	if m.cursor < 0 || m.cursor >= len(page) {
		return "", false
	}
	return page[m.cursor].ID, true
}

func (m *Model) clampCursor() {
	n := len(m.engine.CurrentPageSlice())
	m.cursor = max(0, min(m.cursor, n-1))
}
