package notifications

import (
	"errors"
	"fmt"

	"github.com/townhub-dev/townhub/internal/types"
	"gorm.io/gorm"
)

var (
	// ErrUnavailable is what callers see when the store misbehaves. Detail
	// stays in the server log.
	ErrUnavailable = errors.New("notifications are currently unavailable")

	ErrInvalidHoursAhead = fmt.Errorf("hours_ahead must be between %d and %d", types.MinHoursAhead, types.MaxHoursAhead)
)

// Service implements the preference store, the upcoming-event notifier and
// the comment notifier on top of a shared database handle.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}
