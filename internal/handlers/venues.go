package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/townhub-dev/townhub/db"
	"github.com/townhub-dev/townhub/internal/models"
	"github.com/townhub-dev/townhub/internal/services"
	"github.com/townhub-dev/townhub/internal/types"
	"github.com/townhub-dev/townhub/internal/utils"
	"gorm.io/gorm"
)

type CreateVenueRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Category    string  `json:"category"`
}

type UpdateVenueRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Category    *string  `json:"category"`
}

type VenueResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	OwnerID     uint    `json:"owner_id"`
}

func venueResponse(venue models.Venue) VenueResponse {
	return VenueResponse{
		ID:          venue.ID,
		Name:        venue.Name,
		Slug:        venue.Slug,
		Description: venue.Description,
		Address:     venue.Address,
		City:        venue.City,
		Latitude:    venue.Latitude,
		Longitude:   venue.Longitude,
		Category:    venue.Category,
		Status:      venue.Status,
		OwnerID:     venue.OwnerID,
	}
}

func CreateVenue(ctx *gin.Context) {
	var req CreateVenueRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	slug, err := utils.UniqueSlug(db.DB, &models.Venue{}, req.Name)

	if err != nil {
		log.Printf("Failed to generate venue slug: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid name"})
		return
	}

	venue := models.Venue{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Category:    req.Category,
		Status:      types.StatusPending,
		OwnerID:     currentUser.ID,
	}

	// Best-effort geocoding when the submitter gave an address but no
	// coordinates. A failure just leaves the pin off the map.
	if venue.Address != "" && venue.Latitude == 0 && venue.Longitude == 0 {
		if result, err := services.GeocodeAddress(venue.Address, venue.City); err != nil {
			log.Printf("Failed to geocode venue %q: %v", venue.Name, err)
		} else {
			venue.Latitude = result.Latitude
			venue.Longitude = result.Longitude
		}
	}

	if err := db.DB.Create(&venue).Error; err != nil {
		log.Printf("Failed to create venue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create venue"})
		return
	}

	go services.NotifySubmission("venue", venue.Name, currentUser.Name)

	ctx.JSON(http.StatusCreated, venueResponse(venue))
}

func ListVenues(ctx *gin.Context) {
	query := db.DB.Where("status = ?", types.StatusApproved)

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if city := ctx.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}

	limit := utils.GetLimitParam(ctx, 50, 100)

	var venues []models.Venue

	if err := query.Order("name ASC").Limit(limit).Find(&venues).Error; err != nil {
		log.Printf("Failed to list venues: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve venues"})
		return
	}

	response := make([]VenueResponse, 0, len(venues))

	for _, venue := range venues {
		response = append(response, venueResponse(venue))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetVenue(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var venue models.Venue

	if err := db.DB.Where("slug = ? AND status = ?", slug, types.StatusApproved).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		} else {
			log.Printf("Failed to fetch venue %s: %v", slug, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve venue"})
		}
		return
	}

	ctx.JSON(http.StatusOK, venueResponse(venue))
}

func UpdateVenue(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var venue models.Venue

	if err := db.DB.Where("slug = ? AND owner_id = ?", ctx.Param("slug"), userID).First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve venue"})
		}
		return
	}

	var req UpdateVenueRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" && req.Name != venue.Name {
		slug, err := utils.UniqueSlug(db.DB, &models.Venue{}, req.Name)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid name"})
			return
		}
		venue.Name = req.Name
		venue.Slug = slug
	}

	if req.Description != nil {
		venue.Description = *req.Description
	}
	if req.Address != nil {
		venue.Address = *req.Address
	}
	if req.City != nil {
		venue.City = *req.City
	}
	if req.Latitude != nil {
		venue.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		venue.Longitude = *req.Longitude
	}
	if req.Category != nil {
		venue.Category = *req.Category
	}

	if venue.Address != "" && venue.Latitude == 0 && venue.Longitude == 0 {
		if result, err := services.GeocodeAddress(venue.Address, venue.City); err != nil {
			log.Printf("Failed to geocode venue %q: %v", venue.Name, err)
		} else {
			venue.Latitude = result.Latitude
			venue.Longitude = result.Longitude
		}
	}

	venue.Status = types.StatusPending

	if err := db.DB.Save(&venue).Error; err != nil {
		log.Printf("Failed to update venue %d: %v", venue.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update venue"})
		return
	}

	ctx.JSON(http.StatusOK, venueResponse(venue))
}

func DeleteVenue(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Where("slug = ?", ctx.Param("slug"))

	if !currentUser.IsAdmin {
		query = query.Where("owner_id = ?", currentUser.ID)
	}

	var venue models.Venue

	if err := query.First(&venue).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve venue"})
		}
		return
	}

	if err := db.DB.Delete(&venue).Error; err != nil {
		log.Printf("Failed to delete venue %d: %v", venue.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete venue"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
