package notifications

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/townhub-dev/townhub/internal/models"
	"github.com/townhub-dev/townhub/internal/types"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One shared in-memory database per test, not one per pooled conn.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Venue{},
		&models.Event{},
		&models.Post{},
		&models.Comment{},
		&models.Favorite{},
		&models.NotificationPreference{},
		&models.EventNotification{},
	))

	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func createEvent(t *testing.T, db *gorm.DB, owner models.User, title, status string, start time.Time) models.Event {
	t.Helper()

	event := models.Event{
		Title:     title,
		Slug:      title,
		StartDate: start,
		Status:    status,
		OwnerID:   owner.ID,
	}
	require.NoError(t, db.Create(&event).Error)

	return event
}

func createVenue(t *testing.T, db *gorm.DB, owner models.User, name string) models.Venue {
	t.Helper()

	venue := models.Venue{
		Name:    name,
		Slug:    name,
		Status:  types.StatusApproved,
		OwnerID: owner.ID,
	}
	require.NoError(t, db.Create(&venue).Error)

	return venue
}

func createComment(t *testing.T, db *gorm.DB, author models.User, createdAt time.Time, attach func(*models.Comment)) models.Comment {
	t.Helper()

	comment := models.Comment{
		Content:  "nice",
		AuthorID: author.ID,
	}
	comment.CreatedAt = createdAt
	attach(&comment)
	require.NoError(t, db.Create(&comment).Error)

	return comment
}

func TestPreferencesCreatedOnFirstRead(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := createUser(t, db, "ada")

	pref, err := service.Preferences(user.ID)
	require.NoError(t, err)

	assert.True(t, pref.Enabled)
	assert.Equal(t, types.DefaultHoursAhead, pref.HoursAhead)

	var count int64
	require.NoError(t, db.Model(&models.NotificationPreference{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPreferencesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := createUser(t, db, "ada")

	_, err := service.UpdatePreferences(user.ID, false, 10)
	require.NoError(t, err)

	pref, err := service.Preferences(user.ID)
	require.NoError(t, err)

	assert.False(t, pref.Enabled)
	assert.Equal(t, 10, pref.HoursAhead)
}

func TestUpdatePreferencesRejectsOutOfRange(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := createUser(t, db, "ada")

	_, err := service.UpdatePreferences(user.ID, false, 10)
	require.NoError(t, err)

	for _, hours := range []int{0, -1, 169, 200} {
		_, err := service.UpdatePreferences(user.ID, true, hours)
		assert.ErrorIs(t, err, ErrInvalidHoursAhead, "hours=%d", hours)
	}

	// The failed updates must not have touched the stored row.
	pref, err := service.Preferences(user.ID)
	require.NoError(t, err)
	assert.False(t, pref.Enabled)
	assert.Equal(t, 10, pref.HoursAhead)
}

func TestUpcomingWindowBounds(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "ada")

	createEvent(t, db, owner, "in-two-hours", types.StatusApproved, time.Now().Add(2*time.Hour))
	createEvent(t, db, owner, "already-started", types.StatusApproved, time.Now().Add(-time.Hour))
	createEvent(t, db, owner, "beyond-window", types.StatusApproved, time.Now().Add(49*time.Hour))
	createEvent(t, db, owner, "still-pending", types.StatusPending, time.Now().Add(2*time.Hour))

	events, err := service.UpcomingEvents(user.ID, 48, 0)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "in-two-hours", events[0].Title)
}

func TestUpcomingOrderedAndLimited(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "ada")

	createEvent(t, db, owner, "third", types.StatusApproved, time.Now().Add(30*time.Hour))
	createEvent(t, db, owner, "first", types.StatusApproved, time.Now().Add(time.Hour))
	createEvent(t, db, owner, "second", types.StatusApproved, time.Now().Add(10*time.Hour))

	events, err := service.UpcomingEvents(user.ID, 48, 2)
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].Title)
	assert.Equal(t, "second", events[1].Title)
}

func TestPullUpcomingNoDuplicateDelivery(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "ada")

	event := createEvent(t, db, owner, "concert", types.StatusApproved, time.Now().Add(2*time.Hour))

	first, err := service.PullUpcoming(user.ID, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, event.ID, first[0].ID)

	second, err := service.PullUpcoming(user.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestMarkDeliveredIdempotent(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "ada")

	a := createEvent(t, db, owner, "a", types.StatusApproved, time.Now().Add(time.Hour))
	b := createEvent(t, db, owner, "b", types.StatusApproved, time.Now().Add(2*time.Hour))

	require.NoError(t, service.MarkDelivered(user.ID, []uint{a.ID}))
	require.NoError(t, service.MarkDelivered(user.ID, []uint{a.ID, b.ID}))
	require.NoError(t, service.MarkDelivered(user.ID, []uint{a.ID, b.ID}))

	var count int64
	require.NoError(t, db.Model(&models.EventNotification{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestPullUpcomingDisabledShortCircuits(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	owner := createUser(t, db, "owner")
	user := createUser(t, db, "ada")

	createEvent(t, db, owner, "concert", types.StatusApproved, time.Now().Add(2*time.Hour))

	_, err := service.UpdatePreferences(user.ID, false, types.DefaultHoursAhead)
	require.NoError(t, err)

	var eventQueries int
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test_count_event_queries", func(tx *gorm.DB) {
		if tx.Statement.Table == "events" {
			eventQueries++
		}
	}))

	list, err := service.PullUpcoming(user.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, eventQueries, "disabled preferences must not query the event store")

	// Comment notifications are independent of the enabled flag.
	venue := createVenue(t, db, user, "cafe")
	other := createUser(t, db, "bob")
	createComment(t, db, other, time.Now().Add(-5*time.Second), func(c *models.Comment) {
		c.VenueID = &venue.ID
	})

	comments, err := service.RecentComments(user.ID, types.CommentWindow, 0)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestRecentCommentsSelfExcluded(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := createUser(t, db, "ada")

	venue := createVenue(t, db, user, "cafe")
	createComment(t, db, user, time.Now().Add(-5*time.Second), func(c *models.Comment) {
		c.VenueID = &venue.ID
	})

	comments, err := service.RecentComments(user.ID, types.CommentWindow, 0)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestRecentCommentsOwnershipRequired(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := createUser(t, db, "ada")
	other := createUser(t, db, "bob")

	venue := createVenue(t, db, other, "bobs-cafe")
	createComment(t, db, other, time.Now().Add(-5*time.Second), func(c *models.Comment) {
		c.VenueID = &venue.ID
	})

	comments, err := service.RecentComments(user.ID, types.CommentWindow, 0)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestRecentCommentsWindowBoundary(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := createUser(t, db, "ada")
	other := createUser(t, db, "bob")

	venue := createVenue(t, db, user, "cafe")

	window := types.CommentWindow

	included := createComment(t, db, other, time.Now().Add(-(window - time.Second)), func(c *models.Comment) {
		c.VenueID = &venue.ID
	})
	createComment(t, db, other, time.Now().Add(-(window + time.Second)), func(c *models.Comment) {
		c.VenueID = &venue.ID
	})

	comments, err := service.RecentComments(user.ID, window, 0)
	require.NoError(t, err)

	require.Len(t, comments, 1)
	assert.Equal(t, included.ID, comments[0].ID)
}

func TestRecentCommentsResolveTargets(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	user := createUser(t, db, "ada")
	other := createUser(t, db, "bob")

	event := createEvent(t, db, user, "market", types.StatusApproved, time.Now().Add(24*time.Hour))
	venue := createVenue(t, db, user, "cafe")

	post := models.Post{Title: "hello", Slug: "hello", Body: "hi", Status: types.StatusApproved, AuthorID: user.ID}
	require.NoError(t, db.Create(&post).Error)

	createComment(t, db, other, time.Now().Add(-3*time.Second), func(c *models.Comment) { c.EventID = &event.ID })
	createComment(t, db, other, time.Now().Add(-2*time.Second), func(c *models.Comment) { c.VenueID = &venue.ID })
	createComment(t, db, other, time.Now().Add(-1*time.Second), func(c *models.Comment) { c.PostID = &post.ID })

	comments, err := service.RecentComments(user.ID, types.CommentWindow, 0)
	require.NoError(t, err)
	require.Len(t, comments, 3)

	// Newest first.
	assert.Equal(t, types.TargetPost, comments[0].Target.Type)
	assert.Equal(t, "hello", comments[0].Target.Slug)
	assert.Equal(t, types.TargetVenue, comments[1].Target.Type)
	assert.Equal(t, "cafe", comments[1].Target.Slug)
	assert.Equal(t, types.TargetEvent, comments[2].Target.Type)
	assert.Equal(t, "market", comments[2].Target.Slug)
	assert.Equal(t, "bob", comments[0].AuthorName)
}

func TestEndToEndScenario(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db)
	userA := createUser(t, db, "alice")
	userB := createUser(t, db, "bob")

	event := createEvent(t, db, userA, "street-fair", types.StatusApproved, time.Now().Add(2*time.Hour))

	first, err := service.PullUpcoming(userA.ID, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, event.ID, first[0].ID)

	second, err := service.PullUpcoming(userA.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, second)

	venue := createVenue(t, db, userA, "alices-venue")
	createComment(t, db, userB, time.Now().Add(-5*time.Second), func(c *models.Comment) {
		c.VenueID = &venue.ID
	})
	createComment(t, db, userA, time.Now().Add(-5*time.Second), func(c *models.Comment) {
		c.VenueID = &venue.ID
	})

	comments, err := service.RecentComments(userA.ID, types.CommentWindow, 0)
	require.NoError(t, err)

	require.Len(t, comments, 1)
	assert.Equal(t, "bob", comments[0].AuthorName)
	assert.Equal(t, types.TargetVenue, comments[0].Target.Type)
}
