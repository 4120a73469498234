package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) handleFormKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter":
		m.submit()
		return m
	case "tab":
		m.Board.CycleCategory()
		return m
	case "ctrl+f":
		m.cycleFilter()
		return m
	case "esc":
		if m.Board.Session.Editing() {
			m.Board.CancelEdit()
			m.titleInput.SetValue("")
			m.Status = StatusBar{Text: "edit cancelled"}
			return m
		}
		m.focusList()
		m.Status = StatusBar{Text: "list mode"}
		return m
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	_ = cmd
	m.Board.SetTitle(m.titleInput.Value())
	return m
}

func (m *Model) submit() {
	m.report(m.submitForm())
}

func (m *Model) submitForm() (string, error) {
	res, err := m.Board.Submit(context.Background())
	m.titleInput.SetValue(m.Board.Session.Title)
	if res == board.SubmitAdded {
		m.Cursor = len(m.Board.Visible()) - 1
	}
	m.clampCursor()
	if err != nil {
		return "", err
	}
	switch res {
	case board.SubmitAdded:
		return "task added", nil
	case board.SubmitSaved:
		return "task saved", nil
	case board.SubmitMissing:
		return "task under edit no longer exists", nil
	default:
		return "", nil
	}
}

func (m *Model) addDirect(title, category string) {
	m.report(m.addTask(title, category))
}

func (m *Model) addTask(title, category string) (string, error) {
	if category == "" {
		category = model.DefaultCategory().Name
	}
	task, added, err := m.Board.Add(context.Background(), title, category)
	if !added {
		if err != nil {
			return "", err
		}
		return "", nil
	}
	m.clampCursor()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("added %s task: %s", task.Category, task.Title), nil
}

func (m *Model) focusForm() {
	m.Focus = PaneForm
	m.titleInput.Focus()
}

func (m *Model) focusList() {
	m.Focus = PaneList
	m.titleInput.Blur()
}

func (m Model) renderFormView() string {
	chips := make([]views.CategoryChip, 0, 4)
	for _, c := range model.Categories() {
		chips = append(chips, views.CategoryChip{Name: c.Name, Selected: c.Name == m.Board.Session.Category})
	}
	var editID int64
	if m.Board.Session.Editing() {
		editID = *m.Board.Session.EditID
	}
	return views.RenderFormPanel(views.FormPanelData{
		TitleView:  m.titleInput.View(),
		Categories: chips,
		Editing:    m.Board.Session.Editing(),
		EditID:     editID,
		Focused:    m.Focus == PaneForm,
	})
}
