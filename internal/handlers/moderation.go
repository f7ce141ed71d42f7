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

type ModerationRequest struct {
	Status string `json:"status" binding:"required"`
}

type ModerationQueueResponse struct {
	Events []EventResponse `json:"events"`
	Venues []VenueResponse `json:"venues"`
	Posts  []PostResponse  `json:"posts"`
}

// GetModerationQueue lists everything still waiting for review.
func GetModerationQueue(ctx *gin.Context) {
	var (
		events []models.Event
		venues []models.Venue
		posts  []models.Post
	)

	if err := db.DB.Where("status = ?", types.StatusPending).Order("created_at ASC").Find(&events).Error; err != nil {
		log.Printf("Failed to load pending events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve moderation queue"})
		return
	}

	if err := db.DB.Where("status = ?", types.StatusPending).Order("created_at ASC").Find(&venues).Error; err != nil {
		log.Printf("Failed to load pending venues: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve moderation queue"})
		return
	}

	if err := db.DB.Where("status = ?", types.StatusPending).Order("created_at ASC").Find(&posts).Error; err != nil {
		log.Printf("Failed to load pending posts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve moderation queue"})
		return
	}

	response := ModerationQueueResponse{
		Events: make([]EventResponse, 0, len(events)),
		Venues: make([]VenueResponse, 0, len(venues)),
		Posts:  make([]PostResponse, 0, len(posts)),
	}

	for _, event := range events {
		response.Events = append(response.Events, eventResponse(event))
	}
	for _, venue := range venues {
		response.Venues = append(response.Venues, venueResponse(venue))
	}
	for _, post := range posts {
		response.Posts = append(response.Posts, postResponse(post))
	}

	ctx.JSON(http.StatusOK, response)
}

func bindModerationStatus(ctx *gin.Context) (string, bool) {
	var req ModerationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return "", false
	}

	if req.Status != types.StatusApproved && req.Status != types.StatusRejected {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status must be approved or rejected"})
		return "", false
	}

	return req.Status, true
}

func moderate(ctx *gin.Context, model interface{}, idParam string) {
	status, ok := bindModerationStatus(ctx)

	if !ok {
		return
	}

	id, err := utils.GetIDParam(ctx, idParam)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.First(model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve record"})
		}
		return
	}

	if err := db.DB.Model(model).Update("status", status).Error; err != nil {
		log.Printf("Failed to moderate record %d: %v", id, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": status})
}

func ModerateEvent(ctx *gin.Context) {
	moderate(ctx, &models.Event{}, "event_id")
}

func ModerateVenue(ctx *gin.Context) {
	moderate(ctx, &models.Venue{}, "venue_id")
}

func ModeratePost(ctx *gin.Context) {
	moderate(ctx, &models.Post{}, "post_id")
}
