// Package tui is the full-screen Work/Travel list. Every key that changes
// data goes straight through the to-do store, so each change is persisted
// as it happens.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/worktravel/internal/model"
	"github.com/idilsaglam/worktravel/internal/todos"
)

// listItem adapts a record to bubbles/list.Item
type listItem struct {
	rec     model.Record
	editing bool
}

func (i listItem) Title() string       { return i.rec.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.rec.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.rec.Text
	if it.rec.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	if it.editing {
		text = accentStyle.Render(editMark + " " + it.rec.Text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}

var (
	modeBind   = key.NewBinding(key.WithKeys("tab", "w", "t"), key.WithHelp("tab/w/t", "mode"))
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	deleteBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind   = key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo delete"))
)

// Model is the Bubble Tea model over a hydrated store.
type Model struct {
	ctx    context.Context
	todos  *todos.Store
	modes  *todos.ModeStore
	logger *log.Logger

	list list.Model
	ti   textinput.Model

	adding    bool
	editID    string // record being edited inline
	confirmID string // record awaiting delete confirmation
	errMsg    string // last failed write

	lastDeleted *model.Record // single level undo for d

	width, height int
}

// New builds the model. The stores must already be loaded.
func New(ctx context.Context, s *todos.Store, modes *todos.ModeStore, logger *log.Logger) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("item", "items")
	extra := func() []key.Binding { return []key.Binding{modeBind, addBind, toggleBind, editBind, deleteBind, undoBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = model.MaxTextLen

	m := Model{
		ctx:    ctx,
		todos:  s,
		modes:  modes,
		logger: logger,
		list:   l,
		ti:     ti,
		width:  80,
		height: 24,
	}
	m.list.SetSize(m.width-4, m.listHeight())
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, s *todos.Store, modes *todos.ModeStore, logger *log.Logger) error {
	p := tea.NewProgram(New(ctx, s, modes, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// refresh rebuilds the rows and header from the store.
func (m *Model) refresh() {
	mode := m.modes.Mode()
	visible := m.todos.Visible(mode)
	items := make([]list.Item, 0, len(visible))
	for _, r := range visible {
		items = append(items, listItem{rec: r, editing: m.todos.Editing(r.ID)})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}

	done, pending := todos.Counts(m.todos.Records(), mode)
	work, travel := inactiveTab.Render(model.Work.String()), inactiveTab.Render(model.Travel.String())
	if mode == model.Work {
		work = activeTab.Render(model.Work.String())
	} else {
		travel = activeTab.Render(model.Travel.String())
	}
	m.list.Title = fmt.Sprintf("%s  %s   %s %d  %s %d",
		work, travel,
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
	)
}

func (m *Model) selected() (model.Record, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Record{}, false
	}
	return it.rec, true
}

// report keeps the last write error on screen.
func (m *Model) report(err error) {
	if err == nil {
		m.errMsg = ""
		return
	}
	m.logger.Error("write failed", "err", err)
	m.errMsg = err.Error()
}

func (m *Model) closeInput() {
	m.adding = false
	m.editID = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

// Update and View implement Bubble Tea's Model
func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.list.SetSize(m.width-4, m.listHeight())
		return m, nil
	}

	km, isKey := msg.(tea.KeyMsg)

	// delete confirmation
	if m.confirmID != "" && isKey {
		id := m.confirmID
		m.confirmID = ""
		switch km.String() {
		case "y", "Y":
			r, _ := m.todos.Get(id)
			// The user already answered the prompt.
			removed, err := m.todos.Delete(m.ctx, id, todos.AlwaysConfirm)
			if removed {
				m.lastDeleted = &r
			}
			m.report(err)
			m.refresh()
		}
		return m, nil
	}

	// add mode
	if m.adding {
		if isKey {
			switch km.String() {
			case "enter":
				_, err := m.todos.Add(m.ctx, m.ti.Value(), m.modes.Mode())
				if errors.Is(err, todos.ErrEmptyText) {
					return m, nil
				}
				m.report(err)
				m.closeInput()
				m.refresh()
				m.list.Select(len(m.list.Items()) - 1)
				return m, nil
			case "esc":
				m.closeInput()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	// edit mode
	if m.editID != "" {
		if isKey {
			switch km.String() {
			case "enter":
				_, err := m.todos.UpdateText(m.ctx, m.editID, m.ti.Value())
				m.report(err)
				m.closeInput()
				m.refresh()
				return m, nil
			case "esc":
				_ = m.todos.SetEditing(m.editID, false)
				m.closeInput()
				m.refresh()
				return m, nil
			}
		}
		var cmd tea.Cmd
		m.ti, cmd = m.ti.Update(msg)
		return m, cmd
	}

	if isKey {
		switch km.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.setMode(m.modes.Mode().Other())
			return m, nil
		case "w":
			m.setMode(model.Work)
			return m, nil
		case "t":
			m.setMode(model.Travel)
			return m, nil
		case " ":
			if r, ok := m.selected(); ok {
				_, err := m.todos.ToggleComplete(m.ctx, r.ID)
				m.report(err)
				m.refresh()
			}
			return m, nil
		case "a":
			m.adding = true
			m.ti.SetValue("")
			m.ti.Placeholder = "Add a To Do in " + m.modes.Mode().String()
			return m, m.ti.Focus()
		case "e":
			if r, ok := m.selected(); ok {
				if err := m.todos.SetEditing(r.ID, true); err != nil {
					return m, nil
				}
				m.editID = r.ID
				m.ti.SetValue(r.Text)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit To Do"
				m.refresh()
				return m, m.ti.Focus()
			}
			return m, nil
		case "d":
			if r, ok := m.selected(); ok {
				m.confirmID = r.ID
			}
			return m, nil
		case "u":
			if m.lastDeleted == nil {
				return m, nil
			}
			r := *m.lastDeleted
			m.lastDeleted = nil
			_, err := m.todos.Restore(m.ctx, r)
			m.report(err)
			if r.Category != m.modes.Mode() {
				m.setMode(r.Category)
			}
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) setMode(mode model.Category) {
	m.report(m.modes.SetMode(m.ctx, mode))
	m.list.ResetSelected()
	m.refresh()
}

func (m Model) listHeight() int {
	h := m.height - 4
	if m.adding || m.editID != "" || m.confirmID != "" {
		h -= 3
	}
	if m.errMsg != "" {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) View() string {
	m.list.SetSize(m.width-4, m.listHeight())
	content := m.list.View()

	switch {
	case m.adding || m.editID != "":
		title := "Add To Do"
		if m.editID != "" {
			title = "Edit To Do"
		}
		content += "\n" + panelStyle.Render(title+"\n"+m.ti.View())
	case m.confirmID != "":
		text := ""
		if r, ok := m.todos.Get(m.confirmID); ok {
			text = r.Text
		}
		prompt := fmt.Sprintf("Delete To Do %q? Are you sure?\n%s",
			text, helpStyle.Render("y: I'm sure   any other key: cancel"))
		content += "\n" + panelStyle.Render(prompt)
	}
	if m.errMsg != "" {
		content += "\n" + errorStyle.Render("✖ "+m.errMsg)
	}
	return panelStyle.Render(content)
}
