package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📅 Social Scheduler"))
	b.WriteString("\n\n")

	b.WriteString(m.stateText())
	b.WriteString("\n\n")

	if m.State == StateSelecting {
		b.WriteString(InfoStyle.Render("Select a content item:"))
		b.WriteString("\n")
		for i, item := range m.Items {
			cursor := "  "
			line := fmt.Sprintf("%s (from %s)", item.Title, item.Source)
			if i == m.Cursor {
				cursor = "> "
				line = HighlightStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString("\n")
	}

	if m.State == StateDone && m.Result != nil {
		var result string
		if m.Result.MediaID != "" {
			result = fmt.Sprintf("Posted successfully!\nMedia ID: %s\nCaption:\n%s", m.Result.MediaID, m.Result.Caption)
		} else {
			result = fmt.Sprintf("Post scheduled!\nPost ID: %s\nCaption:\n%s", m.Result.PostID, m.Result.Caption)
		}
		b.WriteString(BoxStyle.Render(result))
		b.WriteString("\n\n")
	}

	if len(m.Scheduled) > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("🗓  Scheduled posts: %d", len(m.Scheduled))))
		b.WriteString("\n")
		for _, post := range m.Scheduled {
			line := fmt.Sprintf("   %s  %s (at %s)", post.ID, post.Payload.ContentItem.Title, post.Payload.ScheduledTime)
			b.WriteString(InfoStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, line := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.helpText())
	return b.String()
}

func (m Model) stateText() string {
	switch m.State {
	case StateIdle:
		return StatusStyle.Render("● Ready")
	case StateFetching:
		return StatusStyle.Render("● Fetching content from feeds...")
	case StateSelecting:
		return StatusStyle.Render("● Choose an item to post")
	case StateGenerating:
		return StatusStyle.Render("● Generating image and caption...")
	case StateDone:
		return StatusStyle.Render("● Done")
	case StateError:
		return ErrorStyle.Render(fmt.Sprintf("✗ Error: %v", m.Err))
	default:
		return ""
	}
}

func (m Model) helpText() string {
	switch m.State {
	case StateSelecting:
		return InfoStyle.Render("↑/↓ select | enter: schedule | p: post now | q: quit")
	case StateFetching, StateGenerating:
		return InfoStyle.Render("Press 'q' or Ctrl+C to quit")
	default:
		return InfoStyle.Render("Press 'f' to fetch content | 'q' or Ctrl+C to quit")
	}
}
