package client

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// refreshMsg signals that a controller operation finished and the view
// should re-read controller state.
type refreshMsg struct{}

// TUIModel is the Bubble Tea model over the controller. All list state
// lives in the controller; the model keeps only view concerns (cursor,
// add-mode input, theme).
type TUIModel struct {
	ctrl  *Controller
	prefs KV

	theme  string
	styles Styles

	cursor int
	adding bool
	ti     textinput.Model

	width  int
	height int
}

func NewTUIModel(ctrl *Controller, prefs KV) TUIModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo title..."
	ti.CharLimit = 255

	theme := Theme(prefs)
	return TUIModel{
		ctrl:   ctrl,
		prefs:  prefs,
		theme:  theme,
		styles: ThemeStyles(theme),
		ti:     ti,
		width:  80,
		height: 24,
	}
}

// runOp executes a controller operation off the UI goroutine. The
// controller applies its own state changes; the message only triggers a
// re-render.
func runOp(f func()) tea.Cmd {
	return func() tea.Msg {
		f()
		return refreshMsg{}
	}
}

func (m TUIModel) Init() tea.Cmd {
	return runOp(func() { m.ctrl.Load(context.Background()) })
}

func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case refreshMsg:
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m TUIModel) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ctrl.SetDraft(m.ti.Value())
		m.ti.SetValue("")
		m.ti.Blur()
		m.adding = false
		// An all-whitespace draft makes Add a no-op; nothing is sent.
		return m, runOp(func() { m.ctrl.Add(context.Background()) })
	case "esc":
		m.ctrl.SetDraft("")
		m.ti.SetValue("")
		m.ti.Blur()
		m.adding = false
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m TUIModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.ctrl.ShownItems())-1 {
			m.cursor++
		}
		return m, nil

	case "a":
		// A failed Add leaves the draft in the controller; re-entering
		// add mode brings the typed title back instead of dropping it.
		m.adding = true
		m.ti.SetValue(m.ctrl.Draft())
		m.ti.CursorEnd()
		m.ti.Focus()
		return m, nil

	case " ":
		if id, ok := m.idAtCursor(); ok {
			return m, runOp(func() { m.ctrl.Toggle(context.Background(), id) })
		}
		return m, nil

	case "d":
		if id, ok := m.idAtCursor(); ok {
			return m, runOp(func() { m.ctrl.Remove(context.Background(), id) })
		}
		return m, nil

	case "c":
		return m, runOp(func() { m.ctrl.ClearCompleted(context.Background()) })

	case "f":
		m.ctrl.CycleFilter()
		m.clampCursor()
		return m, nil

	case "r":
		return m, runOp(func() { m.ctrl.Load(context.Background()) })

	case "t":
		if m.theme == "dark" {
			m.theme = "light"
		} else {
			m.theme = "dark"
		}
		m.styles = ThemeStyles(m.theme)
		if err := SaveTheme(m.prefs, m.theme); err != nil {
			log.Println("Error saving theme:", err)
		}
		return m, nil
	}
	return m, nil
}

func (m TUIModel) idAtCursor() (string, bool) {
	shown := m.ctrl.ShownItems()
	if m.cursor < 0 || m.cursor >= len(shown) {
		return "", false
	}
	return shown[m.cursor].ID, true
}

func (m *TUIModel) clampCursor() {
	n := len(m.ctrl.ShownItems())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m TUIModel) View() string {
	s := m.styles
	var b strings.Builder

	header := fmt.Sprintf("%s   %s %d left   %s %s",
		s.Title.Render("Todos"),
		s.Accent.Render("•"), m.ctrl.PendingCount(),
		s.Muted.Render("filter:"), s.Accent.Render(string(m.ctrl.Filter())),
	)
	b.WriteString(header + "\n\n")

	shown := m.ctrl.ShownItems()
	if len(shown) == 0 {
		b.WriteString(s.Muted.Render("  nothing here") + "\n")
	}
	for i, t := range shown {
		box := s.Muted.Render(s.BoxUnchecked)
		text := t.Title
		if t.Completed {
			box = s.Success.Render(s.BoxChecked)
			text = s.Done.Render(text)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = s.Selected.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, box, text))
	}

	b.WriteString("\n")
	switch {
	case m.ctrl.Pending():
		b.WriteString(s.Muted.Render("working...") + "\n")
	case m.ctrl.LastError() != "":
		b.WriteString(s.Error.Render(m.ctrl.LastError()) + "\n")
	}

	if m.adding {
		bar := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
		b.WriteString(bar.Render("Add todo\n"+m.ti.View()) + "\n")
	}

	b.WriteString(s.Help.Render("a add · space toggle · d delete · c clear done · f filter · r reload · t theme · q quit"))
	return b.String()
}
