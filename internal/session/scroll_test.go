package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearBottom(t *testing.T) {
	tests := []struct {
		name   string
		ev     Scrolled
		expect bool
	}{
		{"past the end", Scrolled{Offset: 850, ContentHeight: 1000, ViewHeight: 200}, true},
		{"at the end", Scrolled{Offset: 800, ContentHeight: 1000, ViewHeight: 200}, true},
		{"just inside", Scrolled{Offset: 701, ContentHeight: 1000, ViewHeight: 200}, true},
		{"on the threshold", Scrolled{Offset: 700, ContentHeight: 1000, ViewHeight: 200}, false},
		{"far up", Scrolled{Offset: 400, ContentHeight: 1000, ViewHeight: 200}, false},
		{"short content", Scrolled{Offset: 0, ContentHeight: 50, ViewHeight: 200}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, NearBottom(tt.ev, DefaultScrollThreshold))
		})
	}
}

func TestScrolledUpdatesFollowTail(t *testing.T) {
	c := New(echoGenerator())
	ctx := context.Background()

	_, err := c.Handle(ctx, Scrolled{Offset: 850, ContentHeight: 1000, ViewHeight: 200})
	require.NoError(t, err)
	assert.True(t, c.ShouldScrollToBottom())

	_, err = c.Handle(ctx, Scrolled{Offset: 400, ContentHeight: 1000, ViewHeight: 200})
	require.NoError(t, err)
	assert.False(t, c.ShouldScrollToBottom())

	// Returning near the bottom resumes following.
	_, err = c.Handle(ctx, Scrolled{Offset: 790, ContentHeight: 1000, ViewHeight: 200})
	require.NoError(t, err)
	assert.True(t, c.ShouldScrollToBottom())
}

func TestSubmitResetsFollowTail(t *testing.T) {
	c := New(echoGenerator())
	ctx := context.Background()

	_, err := c.Handle(ctx, Scrolled{Offset: 400, ContentHeight: 1000, ViewHeight: 200})
	require.NoError(t, err)
	require.False(t, c.ShouldScrollToBottom())

	require.NoError(t, c.Submit(ctx, "x := 1"))
	assert.True(t, c.ShouldScrollToBottom())
	c.Wait()
}

func TestScrollThresholdOption(t *testing.T) {
	c := New(echoGenerator(), WithScrollThreshold(3))

	_, err := c.Handle(context.Background(), Scrolled{Offset: 10, ContentHeight: 40, ViewHeight: 20})
	require.NoError(t, err)
	assert.False(t, c.ShouldScrollToBottom())

	_, err = c.Handle(context.Background(), Scrolled{Offset: 18, ContentHeight: 40, ViewHeight: 20})
	require.NoError(t, err)
	assert.True(t, c.ShouldScrollToBottom())
}
