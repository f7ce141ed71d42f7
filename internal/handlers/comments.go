package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/townhub-dev/townhub/db"
	"github.com/townhub-dev/townhub/internal/models"
	"github.com/townhub-dev/townhub/internal/types"
	"github.com/townhub-dev/townhub/internal/utils"
	"gorm.io/gorm"
)

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	AuthorID   uint      `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

func commentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		Content:    comment.Content,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.Author.Name,
		CreatedAt:  comment.CreatedAt,
	}
}

// createComment attaches a comment to a single approved parent. The comment
// rows keep exactly one parent reference non-nil.
func createComment(ctx *gin.Context, comment models.Comment) {
	if err := db.DB.Create(&comment).Error; err != nil {
		log.Printf("Failed to create comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if err := db.DB.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		log.Printf("Failed to reload comment %d: %v", comment.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	ctx.JSON(http.StatusCreated, commentResponse(comment))
}

func CreateEventComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateCommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var event models.Event

	if err := db.DB.Where("slug = ? AND status = ?", ctx.Param("slug"), types.StatusApproved).First(&event).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	createComment(ctx, models.Comment{
		Content:  req.Content,
		AuthorID: currentUser.ID,
		EventID:  &event.ID,
	})
}

func CreateVenueComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateCommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var venue models.Venue

	if err := db.DB.Where("slug = ? AND status = ?", ctx.Param("slug"), types.StatusApproved).First(&venue).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	createComment(ctx, models.Comment{
		Content:  req.Content,
		AuthorID: currentUser.ID,
		VenueID:  &venue.ID,
	})
}

func CreatePostComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateCommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var post models.Post

	if err := db.DB.Where("slug = ? AND status = ?", ctx.Param("slug"), types.StatusApproved).First(&post).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	createComment(ctx, models.Comment{
		Content:  req.Content,
		AuthorID: currentUser.ID,
		PostID:   &post.ID,
	})
}

func listComments(ctx *gin.Context, column string, parentID uint) {
	limit := utils.GetLimitParam(ctx, 50, 200)

	var comments []models.Comment

	err := db.DB.Where(column+" = ?", parentID).
		Order("created_at DESC").
		Limit(limit).
		Preload("Author").
		Find(&comments).Error

	if err != nil {
		log.Printf("Failed to list comments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	response := make([]CommentResponse, 0, len(comments))

	for _, comment := range comments {
		response = append(response, commentResponse(comment))
	}

	ctx.JSON(http.StatusOK, response)
}

func ListEventComments(ctx *gin.Context) {
	var event models.Event

	if err := db.DB.Where("slug = ? AND status = ?", ctx.Param("slug"), types.StatusApproved).First(&event).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	listComments(ctx, "event_id", event.ID)
}

func ListVenueComments(ctx *gin.Context) {
	var venue models.Venue

	if err := db.DB.Where("slug = ? AND status = ?", ctx.Param("slug"), types.StatusApproved).First(&venue).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	listComments(ctx, "venue_id", venue.ID)
}

func ListPostComments(ctx *gin.Context) {
	var post models.Post

	if err := db.DB.Where("slug = ? AND status = ?", ctx.Param("slug"), types.StatusApproved).First(&post).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	listComments(ctx, "post_id", post.ID)
}

func DeleteComment(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := utils.GetIDParam(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := db.DB.Where("id = ?", commentID)

	if !currentUser.IsAdmin {
		query = query.Where("author_id = ?", currentUser.ID)
	}

	var comment models.Comment

	if err := query.First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		}
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		log.Printf("Failed to delete comment %d: %v", comment.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
