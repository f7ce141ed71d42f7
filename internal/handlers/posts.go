package handlers

import (
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
	"gorm.io/gorm"
)

type CreatePostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type UpdatePostRequest struct {
	Title string  `json:"title"`
	Body  *string `json:"body"`
}

type PostResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	AuthorID  uint      `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

func postResponse(post models.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Slug:      post.Slug,
		Body:      post.Body,
		Status:    post.Status,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
	}
}

func CreatePost(ctx *gin.Context) {
	var req CreatePostRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	slug, err := utils.UniqueSlug(db.DB, &models.Post{}, req.Title)

	if err != nil {
		log.Printf("Failed to generate post slug: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid title"})
		return
	}

	post := models.Post{
		Title:    req.Title,
		Slug:     slug,
		Body:     req.Body,
		Status:   types.StatusPending,
		AuthorID: currentUser.ID,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		log.Printf("Failed to create post: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	go services.NotifySubmission("post", post.Title, currentUser.Name)

	ctx.JSON(http.StatusCreated, postResponse(post))
}

func ListPosts(ctx *gin.Context) {
	limit := utils.GetLimitParam(ctx, 50, 100)

	var posts []models.Post

	err := db.DB.Where("status = ?", types.StatusApproved).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error

	if err != nil {
		log.Printf("Failed to list posts: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	response := make([]PostResponse, 0, len(posts))

	for _, post := range posts {
		response = append(response, postResponse(post))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetPost(ctx *gin.Context) {
	slug := ctx.Param("slug")

	var post models.Post

	if err := db.DB.Where("slug = ? AND status = ?", slug, types.StatusApproved).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			log.Printf("Failed to fetch post %s: %v", slug, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		}
		return
	}

	ctx.JSON(http.StatusOK, postResponse(post))
}

func UpdatePost(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var post models.Post

	if err := db.DB.Where("slug = ? AND author_id = ?", ctx.Param("slug"), userID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		}
		return
	}

	var req UpdatePostRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" && req.Title != post.Title {
		slug, err := utils.UniqueSlug(db.DB, &models.Post{}, req.Title)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid title"})
			return
		}
		post.Title = req.Title
		post.Slug = slug
	}

	if req.Body != nil {
		post.Body = *req.Body
	}

	post.Status = types.StatusPending

	if err := db.DB.Save(&post).Error; err != nil {
		log.Printf("Failed to update post %d: %v", post.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	ctx.JSON(http.StatusOK, postResponse(post))
}

func DeletePost(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Where("slug = ?", ctx.Param("slug"))

	if !currentUser.IsAdmin {
		query = query.Where("author_id = ?", currentUser.ID)
	}

	var post models.Post

	if err := query.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		}
		return
	}

	if err := db.DB.Delete(&post).Error; err != nil {
		log.Printf("Failed to delete post %d: %v", post.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
