package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"socialbot/orchestrator"
	"socialbot/types"
)

// FetchCompleteMsg carries the result of a feed fetch
type FetchCompleteMsg struct {
	Items []types.ContentItem
	Err   error
}

// PostCreatedMsg carries the result of a create (schedule or publish)
type PostCreatedMsg struct {
	Result orchestrator.CreateResult
	Err    error
}

// ScheduledLoadedMsg carries the current scheduled post listing
type ScheduledLoadedMsg struct {
	Posts []types.ScheduledPost
	Err   error
}

// fetchContent creates a command to pull items from the configured feeds
func fetchContent(runner *orchestrator.Runner, limit int) tea.Cmd {
	return func() tea.Msg {
		items, err := runner.FetchContent(context.Background(), nil, limit)
		return FetchCompleteMsg{Items: items, Err: err}
	}
}

// createPost creates a command to generate and schedule/publish a post
func createPost(runner *orchestrator.Runner, item types.ContentItem, postNow bool) tea.Cmd {
	return func() tea.Msg {
		result, err := runner.CreatePost(context.Background(), item, "", postNow)
		return PostCreatedMsg{Result: result, Err: err}
	}
}

// refreshScheduled creates a command to reload the scheduled post listing
func refreshScheduled(runner *orchestrator.Runner) tea.Cmd {
	return func() tea.Msg {
		posts, err := runner.ListScheduled(context.Background())
		return ScheduledLoadedMsg{Posts: posts, Err: err}
	}
}
