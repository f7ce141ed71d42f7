package notifications

import (
	"log"

	"github.com/townhub-dev/townhub/internal/models"
	"github.com/townhub-dev/townhub/internal/types"
)

// Preferences returns the user's notification preferences, creating the
// default row on first read.
func (s *Service) Preferences(userID uint) (models.NotificationPreference, error) {
	var pref models.NotificationPreference

	err := s.db.
		Where("user_id = ?", userID).
		Attrs(models.NotificationPreference{
			UserID:     userID,
			Enabled:    true,
			HoursAhead: types.DefaultHoursAhead,
		}).
		FirstOrCreate(&pref).Error

	if err != nil {
		log.Printf("Failed to load notification preferences for user %d: %v", userID, err)
		return models.NotificationPreference{}, ErrUnavailable
	}

	return pref, nil
}

// UpdatePreferences validates and persists the full preference row. Nothing
// is written when hoursAhead is out of range.
func (s *Service) UpdatePreferences(userID uint, enabled bool, hoursAhead int) (models.NotificationPreference, error) {
	if hoursAhead < types.MinHoursAhead || hoursAhead > types.MaxHoursAhead {
		return models.NotificationPreference{}, ErrInvalidHoursAhead
	}

	pref, err := s.Preferences(userID)

	if err != nil {
		return models.NotificationPreference{}, err
	}

	updates := map[string]interface{}{
		"enabled":     enabled,
		"hours_ahead": hoursAhead,
	}

	if err := s.db.Model(&pref).Updates(updates).Error; err != nil {
		log.Printf("Failed to update notification preferences for user %d: %v", userID, err)
		return models.NotificationPreference{}, ErrUnavailable
	}

	return pref, nil
}
