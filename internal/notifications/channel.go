package notifications

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/townhub-dev/townhub/internal/types"
)

type EventPuller interface {
	PullUpcoming(userID uint, limit int) ([]types.UpcomingEventNotification, error)
}

type CommentPuller interface {
	RecentComments(userID uint, window time.Duration, limit int) ([]types.CommentNotification, error)
}

// Channel drives one client's notification stream: an immediate pull on
// entry, then one pull per interval tick until the context is cancelled.
// Each pull hits both notifiers concurrently and pushes a single combined
// frame, but only when there is something to say.
type Channel struct {
	userID   uint
	interval time.Duration
	events   EventPuller
	comments CommentPuller
	send     func(types.StreamPayload) error
}

func NewChannel(userID uint, interval time.Duration, events EventPuller, comments CommentPuller, send func(types.StreamPayload) error) *Channel {
	return &Channel{
		userID:   userID,
		interval: interval,
		events:   events,
		comments: comments,
		send:     send,
	}
}

// Run blocks until ctx is cancelled or a push fails. A failed pull only
// costs that tick; the stream itself stays open.
func (c *Channel) Run(ctx context.Context) {
	if err := c.tick(ctx); err != nil {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.tick(ctx); err != nil {
				return
			}
		}
	}
}

func (c *Channel) tick(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		events   []types.UpcomingEventNotification
		comments []types.CommentNotification
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		list, err := c.events.PullUpcoming(c.userID, types.DefaultUpcomingLimit)

		if err != nil {
			log.Printf("Stream upcoming pull failed for user %d: %v", c.userID, err)
			return
		}

		events = list
	}()

	go func() {
		defer wg.Done()

		list, err := c.comments.RecentComments(c.userID, types.CommentWindow, types.DefaultCommentLimit)

		if err != nil {
			log.Printf("Stream comment pull failed for user %d: %v", c.userID, err)
			return
		}

		comments = list
	}()

	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if len(events) == 0 && len(comments) == 0 {
		return nil
	}

	return c.send(types.StreamPayload{
		Type:                 "notifications",
		Notifications:        events,
		CommentNotifications: comments,
	})
}
