package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"socialbot/orchestrator"
	"socialbot/types"
)

// State represents the application state machine
type State string

const (
	StateIdle       State = "idle"
	StateFetching   State = "fetching"
	StateSelecting  State = "selecting"
	StateGenerating State = "generating"
	StateDone       State = "done"
	StateError      State = "error"
)

// Model represents the TUI state
type Model struct {
	Runner *orchestrator.Runner

	State     State
	Items     []types.ContentItem
	Cursor    int
	Scheduled []types.ScheduledPost
	Result    *orchestrator.CreateResult
	Logs      []string
	Err       error

	FetchLimit int
}

// NewModel creates a new TUI model around a pipeline runner.
func NewModel(runner *orchestrator.Runner) Model {
	return Model{
		Runner:     runner,
		State:      StateIdle,
		FetchLimit: 5,
		Logs:       make([]string, 0),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return refreshScheduled(m.Runner)
}

// AddLog appends a timestamped log line, keeping the last ten.
func (m Model) AddLog(message string) Model {
	line := time.Now().Format("15:04:05") + " " + message
	m.Logs = append(m.Logs, line)
	if len(m.Logs) > 10 {
		m.Logs = m.Logs[len(m.Logs)-10:]
	}
	return m
}
