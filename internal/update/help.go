package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/taskboard/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const aboutMarkdown = `## Palette commands

- ` + "`add <title> [cat:Name]`" + `
- ` + "`edit <id>`, `save`, `cancel`" + `
- ` + "`done <id>`, `delete <id>`" + `
- ` + "`filter All|Work|Personal|School|Others`" + `
`

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.paneBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
		About: views.RenderMarkdown(aboutMarkdown),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) paneBindings() []KeyBinding {
	switch m.Focus {
	case PaneForm:
		return []KeyBinding{
			{Key: "enter", Action: "add task / save edit"},
			{Key: "tab", Action: "next category"},
			{Key: "ctrl+f", Action: "next filter"},
			{Key: "esc", Action: "cancel edit / task list"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "x", Action: "toggle complete"},
			{Key: "e", Action: "edit task"},
			{Key: "d", Action: "delete task"},
			{Key: "f", Action: "next filter"},
			{Key: "i", Action: "type in form"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.paneBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.paneBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
