package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/taskpad/internal/core/task"
	"github.com/colonyops/taskpad/internal/store/storetest"
)

func newTestModel(t *testing.T, texts ...string) (Model, *task.Store) {
	t.Helper()

	store := task.NewStore(storetest.NewMemKV(), zerolog.Nop())
	t.Cleanup(store.Close)

	// Create in reverse so texts[0] ends up first on screen.
	for i := len(texts) - 1; i >= 0; i-- {
		_, err := store.Create(texts[i])
		require.NoError(t, err)
	}

	return New(Deps{Store: store, MaxTextLength: 80}), store
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

// typeText feeds individual runes to the focused input.
func typeText(m Model, text string) Model {
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestModel_Navigation(t *testing.T) {
	t.Run("cursor moves within bounds", func(t *testing.T) {
		m, _ := newTestModel(t, "one", "two", "three")

		m = press(m, "j", "j")
		assert.Equal(t, 2, m.cursor)

		m = press(m, "j")
		assert.Equal(t, 2, m.cursor, "cursor stops at last row")

		m = press(m, "k", "k", "k", "k")
		assert.Equal(t, 0, m.cursor, "cursor stops at first row")
	})

	t.Run("arrow keys work too", func(t *testing.T) {
		m, _ := newTestModel(t, "one", "two")

		m = press(m, "down")
		assert.Equal(t, 1, m.cursor)

		m = press(m, "up")
		assert.Equal(t, 0, m.cursor)
	})
}

func TestModel_Add(t *testing.T) {
	t.Run("adds a task through the input modal", func(t *testing.T) {
		m, store := newTestModel(t)

		m = press(m, "a")
		assert.Equal(t, modeInput, m.mode)

		m = typeText(m, "Buy milk")
		m = press(m, "enter")

		assert.Equal(t, modeList, m.mode)
		tasks := store.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy milk", tasks[0].Text)
		assert.False(t, tasks[0].Completed)
	})

	t.Run("new task appears first", func(t *testing.T) {
		m, store := newTestModel(t, "old task")

		m = press(m, "a")
		m = typeText(m, "new task")
		m = press(m, "enter")

		tasks := store.Tasks()
		require.Len(t, tasks, 2)
		assert.Equal(t, "new task", tasks[0].Text)
		assert.Equal(t, 0, m.cursor, "cursor follows the new task")
	})

	t.Run("empty input does not submit", func(t *testing.T) {
		m, store := newTestModel(t)

		m = press(m, "a")
		m = typeText(m, "   ")
		m = press(m, "enter")

		assert.Equal(t, modeInput, m.mode, "modal stays open")
		assert.NotEmpty(t, m.inputErr)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("esc cancels without creating", func(t *testing.T) {
		m, store := newTestModel(t)

		m = press(m, "a")
		m = typeText(m, "discarded")
		m = press(m, "esc")

		assert.Equal(t, modeList, m.mode)
		assert.Equal(t, 0, store.Len())
	})
}

func TestModel_Edit(t *testing.T) {
	t.Run("edits the task under the cursor", func(t *testing.T) {
		m, store := newTestModel(t, "first", "second")

		m = press(m, "j", "e")
		assert.Equal(t, modeInput, m.mode)
		assert.Equal(t, "second", m.input.Value(), "input prefilled")

		m = typeText(m, "!")
		m = press(m, "enter")

		tasks := store.Tasks()
		assert.Equal(t, "first", tasks[0].Text)
		assert.Equal(t, "second!", tasks[1].Text)
	})

	t.Run("edit keeps completion state", func(t *testing.T) {
		m, store := newTestModel(t, "task")
		store.Toggle(store.Tasks()[0].ID)

		m = press(m, "e")
		m = typeText(m, "!")
		m = press(m, "enter")

		tasks := store.Tasks()
		assert.Equal(t, "task!", tasks[0].Text)
		assert.True(t, tasks[0].Completed)
	})

	t.Run("edit on empty list is ignored", func(t *testing.T) {
		m, _ := newTestModel(t)

		m = press(m, "e")
		assert.Equal(t, modeList, m.mode)
	})
}

func TestModel_Toggle(t *testing.T) {
	t.Run("space toggles the task under the cursor", func(t *testing.T) {
		m, store := newTestModel(t, "one", "two")

		m = press(m, "j", "space")

		tasks := store.Tasks()
		assert.False(t, tasks[0].Completed)
		assert.True(t, tasks[1].Completed)

		m = press(m, "space")
		assert.False(t, store.Tasks()[1].Completed)
	})
}

func TestModel_Delete(t *testing.T) {
	t.Run("delete asks for confirmation", func(t *testing.T) {
		m, store := newTestModel(t, "doomed")

		m = press(m, "d")
		assert.Equal(t, modeConfirmDelete, m.mode)
		assert.Equal(t, 1, store.Len(), "nothing deleted yet")

		m = press(m, "y")
		assert.Equal(t, modeList, m.mode)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("n keeps the task", func(t *testing.T) {
		m, store := newTestModel(t, "survivor")

		m = press(m, "d", "n")

		assert.Equal(t, modeList, m.mode)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("cursor clamps after deleting the last row", func(t *testing.T) {
		m, _ := newTestModel(t, "one", "two")

		m = press(m, "j", "d", "y")

		assert.Equal(t, 0, m.cursor)
	})
}

func TestModel_View(t *testing.T) {
	t.Run("renders tasks newest first with checkboxes", func(t *testing.T) {
		m, store := newTestModel(t, "newest", "oldest")
		store.Toggle(store.Tasks()[1].ID)

		view := m.View()

		assert.Contains(t, view, "newest")
		assert.Contains(t, view, "oldest")
		assert.Contains(t, view, "[ ]")
		assert.Contains(t, view, "[x]")
		assert.Less(t, 0, len(view))
	})

	t.Run("empty list shows hint", func(t *testing.T) {
		m, _ := newTestModel(t)

		assert.Contains(t, m.View(), "No tasks yet")
	})

	t.Run("status bar counts tasks", func(t *testing.T) {
		m, _ := newTestModel(t, "one", "two")

		assert.Contains(t, m.View(), "2 tasks")
	})
}
