package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/adminui/internal/models"
)

var columnWidths = map[models.Field]int{
	models.FieldName:  24,
	models.FieldEmail: 32,
	models.FieldRole:  10,
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoadingView:
		return fmt.Sprintf("\n %s Loading members from %s...\n", m.spinner.View(), m.source.Name())
	case ErrorView:
		return m.renderError()
	case TableView:
		return m.renderTable()
	default:
		return ""
	}
}

func (m *Model) renderError() string {
	msg := styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	helpKeys := []key.Binding{m.keys.reload, m.keys.quit}
	if m.engine.Len() > 0 {
		helpKeys = append(helpKeys, m.keys.back)
	}
	return fmt.Sprintf("%s\n\n%s\n", msg, m.help.ShortHelpView(helpKeys))
}

func (m *Model) renderTable() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("Members"))
	b.WriteString("\n")
	b.WriteString(m.renderCounts())
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	page := m.engine.CurrentPageSlice()
	if len(page) == 0 {
		b.WriteString(styles.help.Render("  No members match the current search"))
		b.WriteString("\n")
	}
	for i, member := range page {
		b.WriteString(m.renderRow(i, member))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderPageBar())
	b.WriteString("\n")

	if m.mode == EditMode {
		b.WriteString("\n")
		b.WriteString(m.renderEditForm())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.ok.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case SearchMode:
		b.WriteString(m.help.ShortHelpView(m.keys.searchHelp()))
	case EditMode:
		b.WriteString(m.help.ShortHelpView(m.keys.editHelp()))
	default:
		b.WriteString(m.help.View(m.keys))
	}
	b.WriteString("\n")

	return b.String()
}

func (m *Model) renderCounts() string {
	e := m.engine
	counts := fmt.Sprintf("%d members · %d matching · %d selected", e.Len(), e.FilteredLen(), e.SelectedCount())
	if !e.CanDelete() {
		return counts + styles.disabled.Render("  [D] delete selected")
	}
	return counts + styles.warn.Render("  [D] delete selected")
}

func (m *Model) renderHeader() string {
	cells := []string{"  ", checkbox(m.engine.AllSelected())}
	for _, f := range models.Fields() {
		cells = append(cells, cell(f.Title(), columnWidths[f]))
	}
	return styles.header.Render(strings.Join(cells, " "))
}

func (m *Model) renderRow(i int, member models.Member) string {
	marker := "  "
	if i == m.cursor {
		marker = styles.cursor.Render("> ")
	}

	cells := []string{marker, checkbox(m.engine.IsSelected(member.ID))}
	for _, f := range models.Fields() {
		cells = append(cells, cell(member.Field(f), columnWidths[f]))
	}
	if member.Editing {
		cells = append(cells, styles.warn.Render("✎ editing"))
	}

	row := strings.Join(cells, " ")
	if m.engine.IsSelected(member.ID) {
		return styles.selected.Render(row)
	}
	return row
}

// renderPageBar draws first/prev, every page number, and next/last, greying the
// arrows at the boundaries.
func (m *Model) renderPageBar() string {
	e := m.engine
	arrow := func(label string, enabled bool) string {
		if enabled {
			return label
		}
		return styles.disabled.Render(label)
	}

	parts := []string{arrow("«", e.HasPrev()), arrow("‹", e.HasPrev())}
	for p := 1; p <= e.PageCount(); p++ {
		label := strconv.Itoa(p)
		if p == e.CurrentPage() {
			label = styles.active.Render(label)
		}
		parts = append(parts, label)
	}
	parts = append(parts, arrow("›", e.HasNext()), arrow("»", e.HasNext()))

	return strings.Join(parts, " ") + styles.help.Render(fmt.Sprintf("   page %d of %d", e.CurrentPage(), e.PageCount()))
}

func (m *Model) renderEditForm() string {
	lines := []string{styles.warn.Render(fmt.Sprintf("Editing member %s", m.editID))}
	for _, in := range m.inputs {
		lines = append(lines, in.View())
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func cell(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		s = string(r[:width-1]) + "…"
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}
