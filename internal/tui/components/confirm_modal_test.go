package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestConfirmModal(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		confirmed bool
		cancelled bool
	}{
		{"y confirms", "y", true, false},
		{"enter confirms", "enter", true, false},
		{"n cancels", "n", false, true},
		{"esc cancels", "esc", false, true},
		{"other keys do nothing", "x", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmModal("Delete this task?")

			m, _ = m.Update(keyMsg(tt.key))

			assert.Equal(t, tt.confirmed, m.Confirmed())
			assert.Equal(t, tt.cancelled, m.Cancelled())
		})
	}

	t.Run("non-key messages are ignored", func(t *testing.T) {
		m := NewConfirmModal("Delete this task?")

		m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

		assert.False(t, m.Confirmed())
		assert.False(t, m.Cancelled())
	})

	t.Run("view shows message and prompt", func(t *testing.T) {
		m := NewConfirmModal("Delete this task?")

		view := m.View()

		assert.Contains(t, view, "Delete this task?")
		assert.Contains(t, view, "Continue? (y/n)")
	})
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}
