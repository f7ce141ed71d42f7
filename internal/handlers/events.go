package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/townhub-dev/townhub/db"
	"github.com/townhub-dev/townhub/internal/models"
	"github.com/townhub-dev/townhub/internal/services"
	"github.com/townhub-dev/townhub/internal/types"
	"github.com/townhub-dev/townhub/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateEventRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	StartDate   time.Time         `json:"start_date" binding:"required"`
	EndDate     *time.Time        `json:"end_date"`
	Address     string            `json:"address"`
	Category    string            `json:"category"`
	ImageURL    string            `json:"image_url"`
	Links       map[string]string `json:"links"`
	VenueID     *uint             `json:"venue_id"`
}

type UpdateEventRequest struct {
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	StartDate   *time.Time        `json:"start_date"`
	EndDate     *time.Time        `json:"end_date"`
	Address     *string           `json:"address"`
	Category    *string           `json:"category"`
	ImageURL    *string           `json:"image_url"`
	Links       map[string]string `json:"links"`
	VenueID     *uint             `json:"venue_id"`
}

type EventResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	Address     string         `json:"address"`
	Category    string         `json:"category"`
	Status      string         `json:"status"`
	ImageURL    string         `json:"image_url"`
	Links       datatypes.JSON `json:"links,omitempty"`
	OwnerID     uint           `json:"owner_id"`
	VenueID     *uint          `json:"venue_id"`
}

func eventResponse(event models.Event) EventResponse {
	return EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Slug:        event.Slug,
		Description: event.Description,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		Address:     event.Address,
		Category:    event.Category,
		Status:      event.Status,
		ImageURL:    event.ImageURL,
		Links:       event.Links,
		OwnerID:     event.OwnerID,
		VenueID:     event.VenueID,
	}
}

func CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if req.VenueID != nil {
		var venue models.Venue

		if err := db.DB.Where("id = ? AND status = ?", *req.VenueID, types.StatusApproved).First(&venue).Error; err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Venue not found"})
			return
		}
	}

	slug, err := utils.UniqueSlug(db.DB, &models.Event{}, req.Title)

	if err != nil {
		log.Printf("Failed to generate event slug: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid title"})
		return
	}

	var links datatypes.JSON

	if len(req.Links) > 0 {
		raw, err := json.Marshal(req.Links)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid links format"})
			return
		}
		links = raw
	}

	event := models.Event{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Address:     req.Address,
		Category:    req.Category,
		Status:      types.StatusPending,
		ImageURL:    req.ImageURL,
		Links:       links,
		OwnerID:     currentUser.ID,
		VenueID:     req.VenueID,
	}

	if err := db.DB.Create(&event).Error; err != nil {
		log.Printf("Failed to create event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	go services.NotifySubmission("event", event.Title, currentUser.Name)

	ctx.JSON(http.StatusCreated, eventResponse(event))
}

func ListEvents(ctx *gin.Context) {
	query := db.DB.Where("status = ?", types.StatusApproved)

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if ctx.Query("upcoming") == "true" {
		query = query.Where("start_date >= ?", time.Now())
	}

	limit := utils.GetLimitParam(ctx, 50, 100)

	var events []models.Event

	if err := query.Order("start_date ASC").Limit(limit).Find(&events).Error; err != nil {
		log.Printf("Failed to list events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	response := make([]EventResponse, 0, len(events))

	for _, event := range events {
		response = append(response, eventResponse(event))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetEvent(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var event models.Event

	if err := db.DB.Where("slug = ? AND status = ?", slug, types.StatusApproved).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			log.Printf("Failed to fetch event %s: %v", slug, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		}
		return
	}

	ctx.JSON(http.StatusOK, eventResponse(event))
}

func UpdateEvent(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var event models.Event

	if err := db.DB.Where("slug = ? AND owner_id = ?", ctx.Param("slug"), userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		}
		return
	}

	var req UpdateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" && req.Title != event.Title {
		slug, err := utils.UniqueSlug(db.DB, &models.Event{}, req.Title)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid title"})
			return
		}
		event.Title = req.Title
		event.Slug = slug
	}

	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate
	}
	if req.Address != nil {
		event.Address = *req.Address
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.VenueID != nil {
		event.VenueID = req.VenueID
	}
	if len(req.Links) > 0 {
		raw, err := json.Marshal(req.Links)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid links format"})
			return
		}
		event.Links = raw
	}

	// Edits go back through the moderation queue.
	event.Status = types.StatusPending

	if err := db.DB.Save(&event).Error; err != nil {
		log.Printf("Failed to update event %d: %v", event.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	ctx.JSON(http.StatusOK, eventResponse(event))
}

func DeleteEvent(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Where("slug = ?", ctx.Param("slug"))

	if !currentUser.IsAdmin {
		query = query.Where("owner_id = ?", currentUser.ID)
	}

	var event models.Event

	if err := query.First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		}
		return
	}

	if err := db.DB.Delete(&event).Error; err != nil {
		log.Printf("Failed to delete event %d: %v", event.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
