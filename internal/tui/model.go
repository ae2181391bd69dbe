// Package tui implements the single-screen Bubble Tea interface for
// taskpad.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/taskpad/internal/core/styles"
	"github.com/colonyops/taskpad/internal/core/task"
	"github.com/colonyops/taskpad/internal/tui/components"
)

// mode tracks which surface currently receives input.
type mode int

const (
	modeList mode = iota
	modeInput
	modeConfirmDelete
)

// Deps are the collaborators the TUI needs.
type Deps struct {
	Store         *task.Store
	MaxTextLength int
}

// Model is the single-screen task list.
type Model struct {
	store *task.Store
	keys  keyMap

	mode   mode
	cursor int

	input     textinput.Model
	editingID string // empty while adding
	inputErr  string

	confirm  components.ConfirmModal
	deleteID string

	width  int
	height int
}

// New creates the TUI model. The store is expected to be loaded.
func New(deps Deps) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.Prompt = "> "
	ti.PromptStyle = styles.TextPrimaryBoldStyle
	ti.CharLimit = deps.MaxTextLength
	ti.Width = 40

	return Model{
		store: deps.Store,
		keys:  defaultKeyMap(),
		input: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		return m, nil
	}

	switch m.mode {
	case modeInput:
		return m.updateInput(msg)
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	default:
		return m.updateList(msg)
	}
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	tasks := m.store.Tasks()

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Add):
		m.mode = modeInput
		m.editingID = ""
		m.inputErr = ""
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(keyMsg, m.keys.Edit):
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.cursor]
		m.mode = modeInput
		m.editingID = t.ID
		m.inputErr = ""
		m.input.SetValue(t.Text)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(keyMsg, m.keys.Toggle):
		if len(tasks) > 0 {
			m.store.Toggle(tasks[m.cursor].ID)
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if len(tasks) == 0 {
			return m, nil
		}
		t := tasks[m.cursor]
		m.mode = modeConfirmDelete
		m.deleteID = t.ID
		m.confirm = components.NewConfirmModal(fmt.Sprintf("Delete %q?", t.Text))
	}

	return m, nil
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.mode = modeList
			m.input.Blur()
			return m, nil

		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				m.inputErr = "text is required"
				return m, nil
			}

			if m.editingID == "" {
				_, _ = m.store.Create(text)
				m.cursor = 0
			} else {
				_ = m.store.Edit(m.editingID, text)
			}

			m.mode = modeList
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.inputErr != "" && strings.TrimSpace(m.input.Value()) != "" {
		m.inputErr = ""
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)

	switch {
	case m.confirm.Confirmed():
		m.store.Delete(m.deleteID)
		m.mode = modeList
		m.clampCursor()
	case m.confirm.Cancelled():
		m.mode = modeList
	}

	return m, cmd
}

// clampCursor keeps the cursor on a valid row after deletions.
func (m *Model) clampCursor() {
	if n := m.store.Len(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	switch m.mode {
	case modeInput:
		return m.centered(m.inputView())
	case modeConfirmDelete:
		return m.centered(m.confirm.View())
	default:
		return m.listView()
	}
}

func (m Model) listView() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("taskpad"))
	b.WriteString("\n\n")

	tasks := m.store.Tasks()
	if len(tasks) == 0 {
		b.WriteString(styles.TextMutedStyle.Render("No tasks yet. Press a to add one."))
		b.WriteString("\n")
	}

	for i, t := range tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = styles.CursorStyle.Render("> ")
		}

		checkbox := "[ ]"
		textStyle := styles.TaskTextStyle
		if t.Completed {
			checkbox = styles.CheckboxStyle.Render("[x]")
			textStyle = styles.TaskDoneStyle
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, checkbox, textStyle.Render(t.Text)))
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar(len(tasks)))

	return b.String()
}

func (m Model) statusBar(count int) string {
	help := "a add  e edit  space toggle  d delete  q quit"
	return styles.StatusBarStyle.Render(fmt.Sprintf("%d tasks  •  %s", count, help))
}

func (m Model) inputView() string {
	title := "Add task"
	if m.editingID != "" {
		title = "Edit task"
	}

	rows := []string{
		styles.ModalTitleStyle.Render(title),
		"",
		m.input.View(),
	}
	if m.inputErr != "" {
		rows = append(rows, styles.FormErrorStyle.Render(m.inputErr))
	}
	rows = append(rows, styles.ModalHelpStyle.Render("enter save  esc cancel"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// centered places content in the middle of the screen when the terminal
// size is known.
func (m Model) centered(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
