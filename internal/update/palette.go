package update

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskboard/internal/commands"
)

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette"}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.logger.Debug("palette command", "input", raw)

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			return resultOf(m.addTask(a.Title, a.Category))
		},
		Edit: func(t commands.TargetArgs) (commands.Result, error) {
			return resultOf(m.editTask(t.ID))
		},
		Save: func() (commands.Result, error) {
			if !m.Board.Session.Editing() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task is being edited"}
			}
			return resultOf(m.submitForm())
		},
		Done: func(t commands.TargetArgs) (commands.Result, error) {
			return resultOf(m.toggleTask(t.ID))
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			return resultOf(m.deleteTask(t.ID))
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			return resultOf(m.applyFilter(f.Selector))
		},
		Cancel: func() (commands.Result, error) {
			if !m.Board.Session.Editing() {
				return commands.Result{Message: "nothing to cancel"}, nil
			}
			m.Board.CancelEdit()
			m.titleInput.SetValue("")
			return commands.Result{Message: "edit cancelled"}, nil
		},
	})
	if err != nil {
		m.fail(err)
	} else if res.Message != "" {
		m.Status = StatusBar{Text: res.Message}
		m.notify("Command", res.Message, "info")
	}

	m.closePalette()
	return m
}

func resultOf(message string, err error) (commands.Result, error) {
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Message: message}, nil
}
