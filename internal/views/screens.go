package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/taskboard/internal/model"
)

type CategoryChip struct {
	Name     string
	Selected bool
}

type FormPanelData struct {
	TitleView  string
	Categories []CategoryChip
	Editing    bool
	EditID     int64
	Focused    bool
}

type TaskRowData struct {
	ID          int64
	Title       string
	Category    string
	CreatedAt   string
	Completed   bool
	CompletedAt string
}

type TaskListPanelData struct {
	Filter     string
	Rows       []TaskRowData
	CursorID   int64
	TotalCount int
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	About    string
}

var (
	chipSelected = lipgloss.NewStyle().Bold(true).Underline(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	metaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneAtStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// categoryStyle maps registry colors onto ANSI palette entries.
func categoryStyle(name string) lipgloss.Style {
	var c string
	switch model.ColorFor(name) {
	case model.ColorBlue:
		c = "12"
	case model.ColorGreen:
		c = "10"
	case model.ColorYellow:
		c = "11"
	default:
		c = "7"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func RenderFormPanel(data FormPanelData) string {
	var b strings.Builder
	if data.Editing {
		b.WriteString(fmt.Sprintf("edit task %d:\n", data.EditID))
	} else {
		b.WriteString("new task:\n")
	}
	b.WriteString(data.TitleView + "\n")

	chips := make([]string, 0, len(data.Categories))
	for _, c := range data.Categories {
		label := c.Name
		if c.Selected {
			label = chipSelected.Render("[" + c.Name + "]")
		}
		chips = append(chips, categoryStyle(c.Name).Render(label))
	}
	b.WriteString("category: " + strings.Join(chips, " ") + "\n")

	action := "add"
	if data.Editing {
		action = "save"
	}
	if data.Focused {
		b.WriteString(fmt.Sprintf("actions: [enter]%s [tab]category [esc]list", action))
	} else {
		b.WriteString("actions: [i]type [tab]category [f]filter")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskList(data TaskListPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks: filter %s (%d of %d)\n", data.Filter, len(data.Rows), data.TotalCount))
	b.WriteString("actions: [j/k]move [x]toggle [e]edit [d]delete\n")
	if len(data.Rows) == 0 {
		b.WriteString("\n  (no tasks)")
		return b.String()
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.CursorID {
			cursor = ">"
		}
		check := "[ ]"
		title := row.Title
		if row.Completed {
			check = "[x]"
			title = doneStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("\n%s %s %s %s\n", cursor, check, title, categoryStyle(row.Category).Render("#"+row.Category)))
		b.WriteString(metaStyle.Render(fmt.Sprintf("      id %d | created %s", row.ID, row.CreatedAt)))
		if row.Completed {
			b.WriteString("\n" + doneAtStyle.Render("      completed "+row.CompletedAt))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command:\n" + inputView
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n\n" + data.HelpView)
	}
	if data.About != "" {
		b.WriteString("\n\n" + data.About)
	}
	return b.String()
}
