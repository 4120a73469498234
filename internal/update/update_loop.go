package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		if m.Focus == PaneForm {
			return m.handleFormKey(typed), nil
		}

		switch typed.String() {
		case m.Keys.Palette:
			m.openPalette()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		return m.handleListKey(typed), nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.fail(typed.Err)
		return m, nil
	case AddTaskMsg:
		m.addDirect(typed.Title, typed.Category)
		return m, nil
	case SetFilterMsg:
		m.setFilter(typed.Selector)
		return m, nil
	case ToggleTaskMsg:
		m.toggle(typed.ID)
		return m, nil
	case EditTaskMsg:
		m.beginEdit(typed.ID)
		return m, nil
	case DeleteTaskMsg:
		m.remove(typed.ID)
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := m.renderFormView() + "\n\n" + m.renderTaskListView()
	rightPane := strings.TrimSpace(m.renderCommandPalette() + "\n" + m.renderHelpIfVisible())

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskboard | filter: %s | tasks: %d | focus: %s", m.Board.Filter, m.Board.Len(), m.Focus),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusIsErr:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s cmd | %s help | %s quit (list) | ctrl+c quit", m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}
