package views

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusIsErr  bool
	Footer       string
	Notification string
}

const (
	mainPaneWidth = 62
	sidePaneWidth = 46
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderApp stacks header, panes, status, notification and footer. The side
// pane is only drawn when it has content.
func RenderApp(data AppData) string {
	body := panelStyle.Width(mainPaneWidth).Render(data.LeftPane)
	if side := strings.TrimSpace(data.RightPane); side != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, panelStyle.Width(sidePaneWidth).Render(side))
	}

	statusFn := statusStyle.Render
	if data.StatusIsErr {
		statusFn = errorStyle.Render
	}

	parts := []string{headerStyle.Render(data.Header), body, statusFn(data.StatusLine)}
	if data.Notification != "" {
		parts = append(parts, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		parts = append(parts, footerStyle.Render(data.Footer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

var (
	mdOnce     sync.Once
	mdRenderer *glamour.TermRenderer
	mdErr      error
)

// RenderMarkdown renders md wrapped to the side pane. It falls back to the
// raw text when glamour cannot render it.
func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	mdOnce.Do(func() {
		mdRenderer, mdErr = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(sidePaneWidth-4),
		)
	})
	if mdErr != nil {
		return md
	}
	out, err := mdRenderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
