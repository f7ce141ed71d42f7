package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/townhub-dev/townhub/db"
	"github.com/townhub-dev/townhub/internal/models"
	"github.com/townhub-dev/townhub/internal/types"
	"github.com/townhub-dev/townhub/internal/utils"
	"gorm.io/gorm"
)

type CreateFavoriteRequest struct {
	EventID *uint `json:"event_id"`
	VenueID *uint `json:"venue_id"`
}

type FavoriteResponse struct {
	ID      uint  `json:"id"`
	EventID *uint `json:"event_id,omitempty"`
	VenueID *uint `json:"venue_id,omitempty"`
}

func CreateFavorite(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateFavoriteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if (req.EventID == nil) == (req.VenueID == nil) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Exactly one of event_id or venue_id is required"})
		return
	}

	if req.EventID != nil {
		var event models.Event

		if err := db.DB.Where("id = ? AND status = ?", *req.EventID, types.StatusApproved).First(&event).Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
	} else {
		var venue models.Venue

		if err := db.DB.Where("id = ? AND status = ?", *req.VenueID, types.StatusApproved).First(&venue).Error; err != nil {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
			return
		}
	}

	favorite := models.Favorite{
		UserID:  currentUser.ID,
		EventID: req.EventID,
		VenueID: req.VenueID,
	}

	if err := db.DB.Create(&favorite).Error; err != nil {
		log.Printf("Failed to create favorite: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Already favorited"})
		return
	}

	ctx.JSON(http.StatusCreated, FavoriteResponse{
		ID:      favorite.ID,
		EventID: favorite.EventID,
		VenueID: favorite.VenueID,
	})
}

func ListFavorites(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var favorites []models.Favorite

	err = db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Event").
		Preload("Venue").
		Find(&favorites).Error

	if err != nil {
		log.Printf("Failed to list favorites for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorites"})
		return
	}

	type favoriteDetail struct {
		FavoriteResponse
		Event *EventResponse `json:"event,omitempty"`
		Venue *VenueResponse `json:"venue,omitempty"`
	}

	response := make([]favoriteDetail, 0, len(favorites))

	for _, favorite := range favorites {
		detail := favoriteDetail{
			FavoriteResponse: FavoriteResponse{
				ID:      favorite.ID,
				EventID: favorite.EventID,
				VenueID: favorite.VenueID,
			},
		}

		if favorite.Event != nil {
			event := eventResponse(*favorite.Event)
			detail.Event = &event
		}

		if favorite.Venue != nil {
			venue := venueResponse(*favorite.Venue)
			detail.Venue = &venue
		}

		response = append(response, detail)
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteFavorite(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	favoriteID, err := utils.GetIDParam(ctx, "favorite_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var favorite models.Favorite

	if err := db.DB.Where("id = ? AND user_id = ?", favoriteID, userID).First(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorite"})
		}
		return
	}

	if err := db.DB.Delete(&favorite).Error; err != nil {
		log.Printf("Failed to delete favorite %d: %v", favorite.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete favorite"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
