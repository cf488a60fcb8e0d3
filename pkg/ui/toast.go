package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastTTL is how long a toast stays on screen before dismissing itself.
const toastTTL = 5 * time.Second

// ToastLevel selects the toast styling.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastError
)

// Toast is one transient message in the notification area.
type Toast struct {
	ID    int
	Level ToastLevel
	Text  string
}

type toastExpiredMsg struct {
	id int
}

// ToastStack holds the visible toasts. Each toast dismisses independently
// after toastTTL; pushing returns the expiry command for the new toast.
type ToastStack struct {
	nextID int
	toasts []Toast
}

// Push appends a toast and returns the command scheduling its dismissal.
func (s *ToastStack) Push(level ToastLevel, text string) tea.Cmd {
	s.nextID++
	id := s.nextID
	s.toasts = append(s.toasts, Toast{ID: id, Level: level, Text: text})
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Expire removes the toast with the given id, if still visible.
func (s *ToastStack) Expire(id int) {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Len returns the number of visible toasts.
func (s *ToastStack) Len() int {
	return len(s.toasts)
}

// View renders the stack, newest last.
func (s *ToastStack) View() string {
	if len(s.toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.toasts))
	for _, t := range s.toasts {
		switch t.Level {
		case ToastError:
			lines = append(lines, errorStyle.Render("✗ "+t.Text))
		case ToastSuccess:
			lines = append(lines, successStyle.Render("✓ "+t.Text))
		default:
			lines = append(lines, dimStyle.Render("• "+t.Text))
		}
	}
	return strings.Join(lines, "\n")
}
