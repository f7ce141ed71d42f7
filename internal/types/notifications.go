package types

import "time"

type UserResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type PreferencesResponse struct {
	Enabled    bool `json:"enabled"`
	HoursAhead int  `json:"hours_ahead"`
}

type UpcomingEventNotification struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	StartDate time.Time `json:"start_date"`
	Address   string    `json:"address"`
	Category  string    `json:"category"`
}

// Comment target types.
const (
	TargetEvent = "event"
	TargetVenue = "venue"
	TargetPost  = "post"
)

// CommentTarget identifies the single parent a comment belongs to. Exactly
// one of the three types applies per comment.
type CommentTarget struct {
	Type  string `json:"type"` // "event", "venue" or "post"
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type CommentNotification struct {
	ID         uint          `json:"id"`
	Content    string        `json:"content"`
	AuthorName string        `json:"author_name"`
	CreatedAt  time.Time     `json:"created_at"`
	Target     CommentTarget `json:"target"`
}

// StreamPayload is one data frame on the notification stream. Frames are
// only sent when at least one list is non-empty.
type StreamPayload struct {
	Type                 string                      `json:"type"`
	Notifications        []UpcomingEventNotification `json:"notifications"`
	CommentNotifications []CommentNotification       `json:"comment_notifications"`
}
