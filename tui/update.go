package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case FetchCompleteMsg:
		return m.handleFetchComplete(msg)
	case PostCreatedMsg:
		return m.handlePostCreated(msg)
	case ScheduledLoadedMsg:
		return m.handleScheduledLoaded(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "f", "F":
		if m.State == StateIdle || m.State == StateDone || m.State == StateError {
			m.State = StateFetching
			m.Err = nil
			m.Result = nil
			m = m.AddLog("Fetching content from feeds...")
			return m, fetchContent(m.Runner, m.FetchLimit)
		}
	case "up", "k":
		if m.State == StateSelecting && m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.State == StateSelecting && m.Cursor < len(m.Items)-1 {
			m.Cursor++
		}
	case "enter", "s":
		if m.State == StateSelecting && len(m.Items) > 0 {
			item := m.Items[m.Cursor]
			m.State = StateGenerating
			m = m.AddLog(fmt.Sprintf("Scheduling post for %q...", item.Title))
			return m, createPost(m.Runner, item, false)
		}
	case "p", "P":
		if m.State == StateSelecting && len(m.Items) > 0 {
			item := m.Items[m.Cursor]
			m.State = StateGenerating
			m = m.AddLog(fmt.Sprintf("Publishing post for %q now...", item.Title))
			return m, createPost(m.Runner, item, true)
		}
	}
	return m, nil
}

// handleFetchComplete processes fetch completion
func (m Model) handleFetchComplete(msg FetchCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Items = msg.Items
	m.Cursor = 0
	if len(msg.Items) == 0 {
		m.State = StateIdle
		m = m.AddLog("No matching content found")
		return m, nil
	}
	m.State = StateSelecting
	m = m.AddLog(fmt.Sprintf("Fetched %d content items", len(msg.Items)))
	return m, nil
}

// handlePostCreated processes create completion
func (m Model) handlePostCreated(msg PostCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Result = &msg.Result
	m.State = StateDone
	if msg.Result.MediaID != "" {
		m = m.AddLog(fmt.Sprintf("Posted to Instagram! Media ID: %s", msg.Result.MediaID))
	} else {
		m = m.AddLog(fmt.Sprintf("Post scheduled with ID: %s", msg.Result.PostID))
	}
	return m, refreshScheduled(m.Runner)
}

// handleScheduledLoaded refreshes the scheduled post listing
func (m Model) handleScheduledLoaded(msg ScheduledLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.Scheduled = msg.Posts
	return m, nil
}
