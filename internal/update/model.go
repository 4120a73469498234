package update

import (
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/taskboard/internal/board"
)

type Pane string

const (
	PaneForm Pane = "form"
	PaneList Pane = "list"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	Board          *board.Board
	Focus          Pane
	Cursor         int
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	logger         *slog.Logger
	// Bubble components used for rich TUI controls
	titleInput   textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// AddTaskMsg adds a task without going through the form.
type AddTaskMsg struct {
	Title    string
	Category string
}

type SetFilterMsg struct {
	Selector string
}

type ToggleTaskMsg struct {
	ID int64
}

type EditTaskMsg struct {
	ID int64
}

type DeleteTaskMsg struct {
	ID int64
}

func NewModel(b *board.Board) Model {
	m := Model{
		Board:    b,
		Focus:    PaneForm,
		notifier: NoopDesktopNotifier{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Keys: GlobalKeyMap{
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
	}
	m.initBubbleComponents()
	m.focusForm()
	return m
}

func NewModelWithConfig(b *board.Board, notifier DesktopNotifier, logger *slog.Logger, cfg RuntimeConfig) Model {
	m := NewModel(b)
	m.DesktopEnabled = cfg.DesktopNotifications
	if notifier != nil {
		m.notifier = notifier
	}
	if logger != nil {
		m.logger = logger
	}
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = "title> "
	m.titleInput.Placeholder = "Enter task"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 40

	m.helpModel = help.New()
}
