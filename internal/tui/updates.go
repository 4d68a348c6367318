package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/docgenius/internal/session"
)

// Updates carries controller snapshots into the bubbletea program. Pass
// Send to session.WithNotify.
type Updates struct {
	ch   chan session.State
	done chan struct{}
}

type stateMsg session.State

func NewUpdates() *Updates {
	return &Updates{
		ch:   make(chan session.State, 16),
		done: make(chan struct{}),
	}
}

// Send delivers s to the program. It drops s once Close has been called.
func (u *Updates) Send(s session.State) {
	select {
	case u.ch <- s:
	case <-u.done:
	}
}

// Close stops delivery. Pending and later sends return immediately.
func (u *Updates) Close() {
	select {
	case <-u.done:
	default:
		close(u.done)
	}
}

func (u *Updates) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case s := <-u.ch:
			return stateMsg(s)
		case <-u.done:
			return nil
		}
	}
}
