package notifications

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/townhub-dev/townhub/internal/types"
)

type fakeEventPuller struct {
	mu    sync.Mutex
	calls int
	list  []types.UpcomingEventNotification
	err   error
}

func (f *fakeEventPuller) PullUpcoming(userID uint, limit int) ([]types.UpcomingEventNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.list, f.err
}

func (f *fakeEventPuller) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCommentPuller struct {
	mu    sync.Mutex
	calls int
	list  []types.CommentNotification
	err   error
}

func (f *fakeCommentPuller) RecentComments(userID uint, window time.Duration, limit int) ([]types.CommentNotification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.list, f.err
}

func (f *fakeCommentPuller) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func collectFrames() (func(types.StreamPayload) error, chan types.StreamPayload) {
	frames := make(chan types.StreamPayload, 16)
	return func(payload types.StreamPayload) error {
		frames <- payload
		return nil
	}, frames
}

func TestChannelPullsImmediatelyOnEntry(t *testing.T) {
	events := &fakeEventPuller{list: []types.UpcomingEventNotification{{ID: 1, Title: "concert"}}}
	comments := &fakeCommentPuller{}
	send, frames := collectFrames()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A long interval: any frame must come from the immediate first pull.
	channel := NewChannel(7, time.Hour, events, comments, send)
	go channel.Run(ctx)

	select {
	case payload := <-frames:
		assert.Equal(t, "notifications", payload.Type)
		require.Len(t, payload.Notifications, 1)
		assert.Equal(t, "concert", payload.Notifications[0].Title)
	case <-time.After(time.Second):
		t.Fatal("expected an immediate frame on connection open")
	}
}

func TestChannelSkipsEmptyTicks(t *testing.T) {
	events := &fakeEventPuller{}
	comments := &fakeCommentPuller{}
	send, frames := collectFrames()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channel := NewChannel(7, 10*time.Millisecond, events, comments, send)
	go channel.Run(ctx)

	time.Sleep(100 * time.Millisecond)

	assert.Greater(t, events.callCount(), 1, "ticker should have fired")
	assert.Empty(t, frames, "no frame should be pushed when both lists are empty")
}

func TestChannelStopsOnCancel(t *testing.T) {
	events := &fakeEventPuller{}
	comments := &fakeCommentPuller{}
	send, _ := collectFrames()

	ctx, cancel := context.WithCancel(context.Background())

	channel := NewChannel(7, 10*time.Millisecond, events, comments, send)

	done := make(chan struct{})
	go func() {
		channel.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("channel did not stop after cancellation")
	}

	eventCalls := events.callCount()
	commentCalls := comments.callCount()

	// Several intervals later nothing further may have been pulled.
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, eventCalls, events.callCount())
	assert.Equal(t, commentCalls, comments.callCount())
}

func TestChannelSurvivesFailedPull(t *testing.T) {
	events := &fakeEventPuller{err: ErrUnavailable}
	comments := &fakeCommentPuller{list: []types.CommentNotification{{ID: 3, Content: "hi"}}}
	send, frames := collectFrames()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channel := NewChannel(7, time.Hour, events, comments, send)
	go channel.Run(ctx)

	select {
	case payload := <-frames:
		assert.Empty(t, payload.Notifications)
		require.Len(t, payload.CommentNotifications, 1)
		assert.Equal(t, "hi", payload.CommentNotifications[0].Content)
	case <-time.After(time.Second):
		t.Fatal("expected a frame despite the failed event pull")
	}
}

func TestChannelCombinesBothPulls(t *testing.T) {
	events := &fakeEventPuller{list: []types.UpcomingEventNotification{{ID: 1}}}
	comments := &fakeCommentPuller{list: []types.CommentNotification{{ID: 2}}}
	send, frames := collectFrames()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	channel := NewChannel(7, time.Hour, events, comments, send)
	go channel.Run(ctx)

	select {
	case payload := <-frames:
		assert.Len(t, payload.Notifications, 1)
		assert.Len(t, payload.CommentNotifications, 1)
	case <-time.After(time.Second):
		t.Fatal("expected a combined frame")
	}
}
