package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/taskboard/internal/views"
)

const maxNotifications = 40

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

// fail records err as the last error and surfaces it in the status bar.
func (m *Model) fail(err error) {
	m.LastError = err
	if err == nil {
		return
	}
	m.logger.Error("board operation failed", "err", err)
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Warn("desktop notification failed", "err", err)
		}
	}
}
