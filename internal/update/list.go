package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) handleListKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		m.Cursor++
		m.clampCursor()
	case "k", "up":
		m.Cursor--
		m.clampCursor()
	case "x", " ":
		if id, ok := m.selectedID(); ok {
			m.toggle(id)
		}
	case "e":
		if id, ok := m.selectedID(); ok {
			m.beginEdit(id)
		}
	case "d":
		if id, ok := m.selectedID(); ok {
			m.remove(id)
		}
	case "f":
		m.cycleFilter()
	case "tab":
		m.Board.CycleCategory()
	case "i", "a", "enter":
		m.focusForm()
		m.Status = StatusBar{Text: "form mode"}
	}
	return m
}

func (m Model) selectedID() (int64, bool) {
	visible := m.Board.Visible()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return 0, false
	}
	return visible[m.Cursor].ID, true
}

func (m *Model) clampCursor() {
	n := len(m.Board.Visible())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// report shows text or err in the status bar. An empty text with no error
// is a silent no-op and leaves the status as it was.
func (m *Model) report(text string, err error) {
	if err != nil {
		m.fail(err)
		return
	}
	if text == "" {
		return
	}
	m.Status = StatusBar{Text: text}
}

func (m *Model) cycleFilter() {
	m.Board.CycleFilter()
	m.Cursor = 0
	m.Status = StatusBar{Text: "filter: " + m.Board.Filter}
}

func (m *Model) setFilter(selector string) {
	m.report(m.applyFilter(selector))
}

func (m *Model) applyFilter(selector string) (string, error) {
	canonical, ok := model.CanonicalFilter(selector)
	if !ok {
		return "", fmt.Errorf("%w: %q", model.ErrUnknownCategory, selector)
	}
	if err := m.Board.SetFilter(canonical); err != nil {
		return "", err
	}
	m.Cursor = 0
	return "filter: " + canonical, nil
}

func (m *Model) toggle(id int64) {
	m.report(m.toggleTask(id))
}

func (m *Model) toggleTask(id int64) (string, error) {
	res, err := m.Board.Toggle(context.Background(), id)
	if res == store.NotFound {
		return fmt.Sprintf("task %d not found", id), nil
	}
	if err != nil {
		return "", err
	}
	task, _ := m.Board.Get(id)
	if task.Completed {
		m.logger.Debug("task completed", "id", id)
		return fmt.Sprintf("completed: %s", task.Title), nil
	}
	return fmt.Sprintf("reopened: %s", task.Title), nil
}

func (m *Model) beginEdit(id int64) {
	m.report(m.editTask(id))
}

func (m *Model) editTask(id int64) (string, error) {
	if m.Board.BeginEdit(id) == store.NotFound {
		return fmt.Sprintf("task %d not found", id), nil
	}
	m.titleInput.SetValue(m.Board.Session.Title)
	m.titleInput.CursorEnd()
	m.focusForm()
	return fmt.Sprintf("editing task %d", id), nil
}

func (m *Model) remove(id int64) {
	m.report(m.deleteTask(id))
}

func (m *Model) deleteTask(id int64) (string, error) {
	wasEditing := m.Board.Session.Editing()
	res, err := m.Board.Delete(context.Background(), id)
	if res == store.NotFound {
		return fmt.Sprintf("task %d not found", id), nil
	}
	if wasEditing && !m.Board.Session.Editing() {
		m.titleInput.SetValue("")
	}
	m.clampCursor()
	if err != nil {
		return "", err
	}
	m.logger.Debug("task deleted", "id", id)
	return fmt.Sprintf("deleted task %d", id), nil
}

func (m Model) renderTaskListView() string {
	visible := m.Board.Visible()
	rows := make([]views.TaskRowData, 0, len(visible))
	for _, task := range visible {
		rows = append(rows, views.TaskRowData{
			ID:          task.ID,
			Title:       task.Title,
			Category:    task.Category,
			CreatedAt:   task.CreatedAt,
			Completed:   task.Completed,
			CompletedAt: task.CompletedAtText(),
		})
	}
	var cursorID int64
	if m.Focus == PaneList {
		cursorID, _ = m.selectedID()
	}
	return views.RenderTaskList(views.TaskListPanelData{
		Filter:     m.Board.Filter,
		Rows:       rows,
		CursorID:   cursorID,
		TotalCount: m.Board.Len(),
	})
}
