// Package session implements the conversation session controller: it owns
// the transcript and draft, issues one documentation request per submission
// and reconciles the transcript with the outcome.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/semaphore"

	"github.com/user/docgenius/internal/prompt"
	"github.com/user/docgenius/internal/types"
	"github.com/user/docgenius/pkg/llm"
)

var (
	// ErrEmptyInput is returned for a submission with nothing but whitespace.
	ErrEmptyInput = errors.New("empty input")
	// ErrRequestInFlight is returned when a request is already outstanding.
	ErrRequestInFlight = errors.New("a request is already in flight")
)

// State is a snapshot of the session.
type State struct {
	SessionID       types.SessionID
	Transcript      []types.Message
	Draft           Draft
	RequestInFlight bool
	FollowTail      bool
	Phase           Phase
	LastOutcome     Outcome
	// Requests counts requests dispatched over the session's lifetime.
	Requests int
}

// Controller owns a single session. All mutations go through its mutex, and
// a one-slot semaphore keeps at most one request outstanding.
type Controller struct {
	generator llm.Generator
	builder   *prompt.Builder
	logger    *slog.Logger
	notify    func(State)
	threshold int

	gate *semaphore.Weighted
	wg   sync.WaitGroup
	ids  types.MessageIDs

	mu    sync.Mutex
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithBuilder sets the request builder.
func WithBuilder(b *prompt.Builder) Option {
	return func(c *Controller) { c.builder = b }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithNotify registers fn to receive a snapshot after every transcript or
// request-state change. fn runs outside the controller's lock and may be
// called from the goroutine that settles a request.
func WithNotify(fn func(State)) Option {
	return func(c *Controller) { c.notify = fn }
}

// WithScrollThreshold sets the follow-tail distance. Values <= 0 are ignored.
func WithScrollThreshold(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.threshold = n
		}
	}
}

// New creates a Controller that sends requests to generator.
func New(generator llm.Generator, opts ...Option) *Controller {
	c := &Controller{
		generator: generator,
		threshold: DefaultScrollThreshold,
		gate:      semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.builder == nil {
		c.builder = prompt.NewBuilder(prompt.HeuristicCounter{}, 0)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.state = State{
		SessionID:  types.NewSessionID(),
		FollowTail: true,
		Phase:      PhaseIdle,
	}
	c.logger = c.logger.With("session_id", string(c.state.SessionID))
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// ShouldScrollToBottom reports whether the view must pin to the newest message.
func (c *Controller) ShouldScrollToBottom() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.FollowTail
}

// Submit appends text as a user message followed by a pending placeholder
// and dispatches one generation request. It returns once the request is
// dispatched; the placeholder is replaced when the request settles.
func (c *Controller) Submit(ctx context.Context, text string) error {
	if types.IsBlank(text) {
		return ErrEmptyInput
	}
	if !c.gate.TryAcquire(1) {
		return ErrRequestInFlight
	}

	c.mu.Lock()
	user := c.appendLocked(text, types.SenderUser, false)
	c.state.Draft = Draft{}
	pending := c.appendLocked(PendingText, types.SenderSystem, true)
	c.state.RequestInFlight = true
	c.state.FollowTail = true
	c.state.Phase = PhaseSending
	c.state.Requests++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("submission accepted",
		"message_id", uint64(user.ID),
		"input_chars", utf8.RuneCountInString(text),
	)
	c.publish(snap)

	c.wg.Add(1)
	go c.dispatch(ctx, pending.ID, text)
	return nil
}

// Wait blocks until every dispatched request has settled.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) dispatch(ctx context.Context, pendingID types.MessageID, text string) {
	defer c.wg.Done()

	start := time.Now()
	reply, outcome := FallbackFailure, OutcomeFailed
	defer func() {
		c.settle(pendingID, reply, outcome, time.Since(start))
	}()

	reply, outcome = c.generate(ctx, text)
}

// generate never fails: every error, and any panic from the generator, is
// turned into a fallback reply.
func (c *Controller) generate(ctx context.Context, text string) (reply string, outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("generator panicked", "panic", fmt.Sprint(r))
			reply, outcome = FallbackFailure, OutcomeFailed
		}
	}()

	req := c.builder.Build(text)
	est := c.builder.Estimate(req)
	if est.OverBudget {
		c.logger.Warn("input exceeds token budget",
			"input_tokens", est.InputTokens,
			"system_tokens", est.SystemTokens,
			"approx", est.Approx,
		)
	} else {
		c.logger.Debug("request built",
			"input_tokens", est.InputTokens,
			"system_tokens", est.SystemTokens,
			"approx", est.Approx,
		)
	}

	out, err := c.generator.Generate(ctx, req)
	switch {
	case err == nil && out != "":
		return out, OutcomeResolved
	case err == nil, errors.Is(err, llm.ErrNoContent):
		c.logger.Warn("generator returned no content", "error", err)
		return FallbackNoContent, OutcomeEmpty
	default:
		c.logger.Error("generation failed", "error", err)
		return FallbackFailure, OutcomeFailed
	}
}

func (c *Controller) settle(pendingID types.MessageID, reply string, outcome Outcome, elapsed time.Duration) {
	c.mu.Lock()
	c.removeLocked(pendingID)
	final := c.appendLocked(reply, types.SenderSystem, false)
	c.state.RequestInFlight = false
	c.state.Phase = PhaseIdle
	c.state.LastOutcome = outcome
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("submission settled",
		"message_id", uint64(final.ID),
		"outcome", string(outcome),
		"output_chars", utf8.RuneCountInString(reply),
		"elapsed", elapsed,
	)
	c.publish(snap)

	// The gate opens only after the idle snapshot is out, so the next
	// submission's snapshot is always published after it.
	c.gate.Release(1)
}

func (c *Controller) appendLocked(text string, sender types.Sender, pending bool) types.Message {
	msg := types.Message{
		ID:      c.ids.Next(),
		Text:    text,
		Sender:  sender,
		Pending: pending,
	}
	c.state.Transcript = append(c.state.Transcript, msg)
	return msg
}

func (c *Controller) removeLocked(id types.MessageID) {
	out := c.state.Transcript[:0]
	for _, m := range c.state.Transcript {
		if m.ID != id {
			out = append(out, m)
		}
	}
	c.state.Transcript = out
}

func (c *Controller) snapshotLocked() State {
	snap := c.state
	snap.Transcript = append([]types.Message(nil), c.state.Transcript...)
	return snap
}

func (c *Controller) publish(s State) {
	if c.notify != nil {
		c.notify(s)
	}
}
