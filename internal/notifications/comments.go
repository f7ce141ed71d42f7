package notifications

import (
	"log"
	"time"

	"github.com/townhub-dev/townhub/internal/models"
	"github.com/townhub-dev/townhub/internal/types"
)

// RecentComments returns comments on the user's own content created strictly
// within the last window, newest first. Comments by the user themselves are
// excluded. There is no delivery tracking here: the short fixed window is
// the whole mechanism, and callers polling faster than it will see repeats.
func (s *Service) RecentComments(userID uint, window time.Duration, limit int) ([]types.CommentNotification, error) {
	if window <= 0 {
		window = types.CommentWindow
	}
	if limit <= 0 {
		limit = types.DefaultCommentLimit
	}

	since := time.Now().Add(-window)

	var comments []models.Comment

	err := s.db.
		Joins("LEFT JOIN events ON events.id = comments.event_id").
		Joins("LEFT JOIN venues ON venues.id = comments.venue_id").
		Joins("LEFT JOIN posts ON posts.id = comments.post_id").
		Where("comments.created_at > ?", since).
		Where("comments.author_id <> ?", userID).
		Where("events.owner_id = ? OR venues.owner_id = ? OR posts.author_id = ?", userID, userID, userID).
		Order("comments.created_at DESC").
		Limit(limit).
		Preload("Author").
		Preload("Event").
		Preload("Venue").
		Preload("Post").
		Find(&comments).Error

	if err != nil {
		log.Printf("Failed to query recent comments for user %d: %v", userID, err)
		return nil, ErrUnavailable
	}

	notifications := make([]types.CommentNotification, 0, len(comments))

	for _, comment := range comments {
		target, ok := resolveTarget(comment)

		if !ok {
			log.Printf("Comment %d has no parent reference, skipping", comment.ID)
			continue
		}

		notifications = append(notifications, types.CommentNotification{
			ID:         comment.ID,
			Content:    comment.Content,
			AuthorName: comment.Author.Name,
			CreatedAt:  comment.CreatedAt,
			Target:     target,
		})
	}

	return notifications, nil
}

// resolveTarget collapses the three mutually exclusive parent references
// into a single tagged target.
func resolveTarget(comment models.Comment) (types.CommentTarget, bool) {
	switch {
	case comment.Event != nil:
		return types.CommentTarget{Type: types.TargetEvent, Title: comment.Event.Title, Slug: comment.Event.Slug}, true
	case comment.Venue != nil:
		return types.CommentTarget{Type: types.TargetVenue, Title: comment.Venue.Name, Slug: comment.Venue.Slug}, true
	case comment.Post != nil:
		return types.CommentTarget{Type: types.TargetPost, Title: comment.Post.Title, Slug: comment.Post.Slug}, true
	default:
		return types.CommentTarget{}, false
	}
}
