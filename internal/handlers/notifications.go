package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/townhub-dev/townhub/db"
	"github.com/townhub-dev/townhub/internal/notifications"
	"github.com/townhub-dev/townhub/internal/types"
	"github.com/townhub-dev/townhub/internal/utils"
)

type UpdatePreferencesRequest struct {
	Enabled    *bool `json:"enabled"`
	HoursAhead *int  `json:"hours_ahead"`
}

func GetNotificationPreferences(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pref, err := notifications.NewService(db.DB).Preferences(userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, types.PreferencesResponse{
		Enabled:    pref.Enabled,
		HoursAhead: pref.HoursAhead,
	})
}

func UpdateNotificationPreferences(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdatePreferencesRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	service := notifications.NewService(db.DB)

	// Unspecified fields keep their stored values.
	current, err := service.Preferences(userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	enabled := current.Enabled
	hoursAhead := current.HoursAhead

	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	if req.HoursAhead != nil {
		hoursAhead = *req.HoursAhead
	}

	pref, err := service.UpdatePreferences(userID, enabled, hoursAhead)

	if err != nil {
		if errors.Is(err, notifications.ErrInvalidHoursAhead) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, types.PreferencesResponse{
		Enabled:    pref.Enabled,
		HoursAhead: pref.HoursAhead,
	})
}

func GetUpcomingNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit := utils.GetLimitParam(ctx, types.DefaultUpcomingLimit, types.MaxUpcomingLimit)

	list, err := notifications.NewService(db.DB).PullUpcoming(userID, limit)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"notifications": list})
}

func GetCommentNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit := utils.GetLimitParam(ctx, types.DefaultCommentLimit, types.DefaultCommentLimit)

	list, err := notifications.NewService(db.DB).RecentComments(userID, types.CommentWindow, limit)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"comment_notifications": list})
}
