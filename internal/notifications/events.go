package notifications

import (
	"log"
	"time"

	"github.com/townhub-dev/townhub/internal/models"
	"github.com/townhub-dev/townhub/internal/types"
	"gorm.io/gorm/clause"
)

// UpcomingEvents returns approved events starting within the next hoursAhead
// hours that have no delivery record for this user yet, soonest first. Both
// window ends are inclusive.
func (s *Service) UpcomingEvents(userID uint, hoursAhead, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = types.DefaultUpcomingLimit
	}
	if limit > types.MaxUpcomingLimit {
		limit = types.MaxUpcomingLimit
	}

	now := time.Now()
	until := now.Add(time.Duration(hoursAhead) * time.Hour)

	var events []models.Event

	err := s.db.
		Joins("LEFT JOIN event_notifications ON event_notifications.event_id = events.id AND event_notifications.user_id = ? AND event_notifications.deleted_at IS NULL", userID).
		Where("events.status = ?", types.StatusApproved).
		Where("events.start_date BETWEEN ? AND ?", now, until).
		Where("event_notifications.id IS NULL").
		Order("events.start_date ASC").
		Limit(limit).
		Find(&events).Error

	if err != nil {
		log.Printf("Failed to query upcoming events for user %d: %v", userID, err)
		return nil, ErrUnavailable
	}

	return events, nil
}

// MarkDelivered records that the given events were surfaced to the user.
// Already-recorded ids are filtered first, and the insert itself ignores
// conflicts, so overlapping calls and concurrent pulls stay idempotent.
func (s *Service) MarkDelivered(userID uint, eventIDs []uint) error {
	if len(eventIDs) == 0 {
		return nil
	}

	var existing []uint

	err := s.db.Model(&models.EventNotification{}).
		Where("user_id = ? AND event_id IN ?", userID, eventIDs).
		Pluck("event_id", &existing).Error

	if err != nil {
		log.Printf("Failed to check delivery records for user %d: %v", userID, err)
		return ErrUnavailable
	}

	delivered := make(map[uint]bool, len(existing))
	for _, id := range existing {
		delivered[id] = true
	}

	var records []models.EventNotification

	for _, id := range eventIDs {
		if !delivered[id] {
			records = append(records, models.EventNotification{UserID: userID, EventID: id})
		}
	}

	if len(records) == 0 {
		return nil
	}

	err = s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error

	if err != nil {
		log.Printf("Failed to insert delivery records for user %d: %v", userID, err)
		return ErrUnavailable
	}

	return nil
}

// PullUpcoming is the top-level upcoming-event pull: read preferences, short
// circuit when disabled, otherwise compute the not-yet-delivered events and
// mark them delivered. An event returned once is never returned again.
func (s *Service) PullUpcoming(userID uint, limit int) ([]types.UpcomingEventNotification, error) {
	pref, err := s.Preferences(userID)

	if err != nil {
		return nil, err
	}

	if !pref.Enabled {
		return []types.UpcomingEventNotification{}, nil
	}

	events, err := s.UpcomingEvents(userID, pref.HoursAhead, limit)

	if err != nil {
		return nil, err
	}

	eventIDs := make([]uint, 0, len(events))
	for _, event := range events {
		eventIDs = append(eventIDs, event.ID)
	}

	// A failed insert means the same events may show up on the next pull.
	// That duplicate beats dropping the notifications on the floor.
	if err := s.MarkDelivered(userID, eventIDs); err != nil {
		log.Printf("Continuing without delivery records for user %d: %v", userID, err)
	}

	notifications := make([]types.UpcomingEventNotification, 0, len(events))

	for _, event := range events {
		notifications = append(notifications, types.UpcomingEventNotification{
			ID:        event.ID,
			Title:     event.Title,
			Slug:      event.Slug,
			StartDate: event.StartDate,
			Address:   event.Address,
			Category:  event.Category,
		})
	}

	return notifications, nil
}
