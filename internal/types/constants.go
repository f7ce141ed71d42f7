package types

import (
	"os"
	"strings"
	"time"
)

const ContextUserKey = "user"

// Content moderation states.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Notification tuning. The comment window is deliberately a fixed constant:
// it backs a short-poll "what's new since last check", not a durable inbox.
const (
	DefaultHoursAhead = 48
	MinHoursAhead     = 1
	MaxHoursAhead     = 168

	DefaultUpcomingLimit = 6
	MaxUpcomingLimit     = 25

	CommentWindow       = 35 * time.Second
	DefaultCommentLimit = 20

	StreamInterval = 30 * time.Second
)

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
