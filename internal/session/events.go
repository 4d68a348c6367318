package session

import (
	"context"
	"errors"
)

// Event is something the input surface reports to the controller.
type Event interface {
	isEvent()
}

// TextChanged carries the surface's current draft and selection.
type TextChanged struct {
	Text  string
	Start int
	End   int
}

// KeyPressed is a key press the surface has not handled yet.
type KeyPressed struct {
	Key   Key
	Shift bool
}

// Scrolled reports a user-driven scroll of the transcript view.
type Scrolled struct {
	Offset        int
	ContentHeight int
	ViewHeight    int
}

// Submitted is an explicit submit action, such as a send button.
type Submitted struct{}

func (TextChanged) isEvent() {}
func (KeyPressed) isEvent()  {}
func (Scrolled) isEvent()    {}
func (Submitted) isEvent()   {}

// Effect tells the surface how to reflect an event.
type Effect struct {
	// Handled is false when the surface should apply its default behavior.
	Handled bool
	// Insert is text the surface must insert at its caret, replacing any selection.
	Insert string
	// Draft is the controller's draft after the event.
	Draft Draft
	// Submitted is set when the event started a request; the surface clears its text.
	Submitted bool
}

// Handle is the single entry point for input surface events.
func (c *Controller) Handle(ctx context.Context, ev Event) (Effect, error) {
	switch ev := ev.(type) {
	case TextChanged:
		c.mu.Lock()
		c.state.Draft = Draft{Text: ev.Text, Start: ev.Start, End: ev.End}.normalized()
		d := c.state.Draft
		c.mu.Unlock()
		return Effect{Handled: true, Draft: d}, nil

	case KeyPressed:
		c.mu.Lock()
		res := ApplyKey(c.state.Draft, ev)
		if res.Action == ActionEdit {
			c.state.Draft = res.Draft
		}
		c.mu.Unlock()

		switch res.Action {
		case ActionEdit:
			return Effect{Handled: true, Insert: res.Insert, Draft: res.Draft}, nil
		case ActionSubmit:
			return c.submitDraft(ctx, res.Draft)
		}
		return Effect{Draft: res.Draft}, nil

	case Scrolled:
		c.mu.Lock()
		c.state.FollowTail = NearBottom(ev, c.threshold)
		d := c.state.Draft
		c.mu.Unlock()
		return Effect{Handled: true, Draft: d}, nil

	case Submitted:
		return c.submitDraft(ctx, c.State().Draft)
	}
	return Effect{}, nil
}

// submitDraft submits d.Text. An empty draft is ignored without error.
func (c *Controller) submitDraft(ctx context.Context, d Draft) (Effect, error) {
	err := c.Submit(ctx, d.Text)
	switch {
	case err == nil:
		return Effect{Handled: true, Submitted: true}, nil
	case errors.Is(err, ErrEmptyInput):
		return Effect{Handled: true, Draft: d}, nil
	default:
		return Effect{Handled: true, Draft: d}, err
	}
}
