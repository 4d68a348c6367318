package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/docgenius/internal/types"
)

func TestHandleTextChangedTracksDraft(t *testing.T) {
	c := newTestController(echoGenerator())

	eff, err := c.Handle(context.Background(), TextChanged{Text: "abc", Start: 5, End: 1})
	require.NoError(t, err)
	assert.True(t, eff.Handled)
	assert.Equal(t, Draft{Text: "abc", Start: 1, End: 3}, eff.Draft)
	assert.Equal(t, eff.Draft, c.State().Draft)
}

func TestHandleTabAndShiftEnter(t *testing.T) {
	c := newTestController(echoGenerator())
	ctx := context.Background()

	_, err := c.Handle(ctx, TextChanged{Text: "ab", Start: 1, End: 1})
	require.NoError(t, err)

	eff, err := c.Handle(ctx, KeyPressed{Key: KeyTab})
	require.NoError(t, err)
	assert.True(t, eff.Handled)
	assert.Equal(t, Indent, eff.Insert)
	assert.Equal(t, Draft{Text: "a    b", Start: 5, End: 5}, eff.Draft)

	eff, err = c.Handle(ctx, KeyPressed{Key: KeyEnter, Shift: true})
	require.NoError(t, err)
	assert.Equal(t, "\n", eff.Insert)
	assert.Equal(t, "a    \nb", c.State().Draft.Text)
	assert.Equal(t, 6, c.State().Draft.Caret())
	assert.Empty(t, c.State().Transcript)
}

func TestHandleEnterSubmitsPreEventDraft(t *testing.T) {
	gen := &recordingGenerator{reply: "doc"}
	c := newTestController(gen)
	ctx := context.Background()

	_, err := c.Handle(ctx, TextChanged{Text: "ab", Start: 1, End: 1})
	require.NoError(t, err)

	eff, err := c.Handle(ctx, KeyPressed{Key: KeyEnter})
	require.NoError(t, err)
	assert.True(t, eff.Handled)
	assert.True(t, eff.Submitted)
	assert.Empty(t, eff.Insert)
	assert.Empty(t, c.State().Draft.Text)
	c.Wait()

	require.NotNil(t, gen.last)
	assert.Equal(t, "ab", gen.last.Input)
	st := c.State()
	require.Len(t, st.Transcript, 2)
	assert.Equal(t, types.Message{ID: st.Transcript[0].ID, Text: "ab", Sender: types.SenderUser}, st.Transcript[0])
}

func TestHandleEnterOnBlankDraft(t *testing.T) {
	gen := &recordingGenerator{reply: "doc"}
	c := newTestController(gen)
	ctx := context.Background()

	_, err := c.Handle(ctx, TextChanged{Text: "  ", Start: 2, End: 2})
	require.NoError(t, err)

	eff, err := c.Handle(ctx, KeyPressed{Key: KeyEnter})
	require.NoError(t, err)
	assert.True(t, eff.Handled, "enter never falls through to a newline")
	assert.False(t, eff.Submitted)
	assert.Equal(t, "  ", eff.Draft.Text)
	assert.Zero(t, gen.calls.Load())
	assert.Empty(t, c.State().Transcript)
}

func TestHandleSubmittedWhileInFlight(t *testing.T) {
	gen := newGatedGenerator()
	c := newTestController(gen)
	ctx := context.Background()

	_, err := c.Handle(ctx, TextChanged{Text: "one"})
	require.NoError(t, err)
	eff, err := c.Handle(ctx, Submitted{})
	require.NoError(t, err)
	require.True(t, eff.Submitted)
	<-gen.started

	_, err = c.Handle(ctx, TextChanged{Text: "two", Start: 3, End: 3})
	require.NoError(t, err)
	eff, err = c.Handle(ctx, Submitted{})
	assert.ErrorIs(t, err, ErrRequestInFlight)
	assert.False(t, eff.Submitted)
	assert.Equal(t, "two", c.State().Draft.Text, "a rejected submit keeps the draft")

	close(gen.release)
	c.Wait()
}

func TestHandleOtherKeyIsUnhandled(t *testing.T) {
	c := newTestController(echoGenerator())
	eff, err := c.Handle(context.Background(), KeyPressed{Key: KeyOther})
	require.NoError(t, err)
	assert.False(t, eff.Handled)
}
