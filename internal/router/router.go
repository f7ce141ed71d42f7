package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/townhub-dev/townhub/internal/handlers"
	"github.com/townhub-dev/townhub/internal/middleware"
	"github.com/townhub-dev/townhub/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/logout", middleware.AuthMiddleware(), handlers.LogoutUser)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		events := api.Group("/events")
		{
			events.GET("", handlers.ListEvents)
			events.GET("/:slug", handlers.GetEvent)
			events.GET("/:slug/comments", handlers.ListEventComments)
			events.POST("", middleware.AuthMiddleware(), handlers.CreateEvent)
			events.POST("/:slug/comments", middleware.AuthMiddleware(), handlers.CreateEventComment)
			events.PATCH("/:slug", middleware.AuthMiddleware(), handlers.UpdateEvent)
			events.DELETE("/:slug", middleware.AuthMiddleware(), handlers.DeleteEvent)
		}

		venues := api.Group("/venues")
		{
			venues.GET("", handlers.ListVenues)
			venues.GET("/:slug", handlers.GetVenue)
			venues.GET("/:slug/comments", handlers.ListVenueComments)
			venues.POST("", middleware.AuthMiddleware(), handlers.CreateVenue)
			venues.POST("/:slug/comments", middleware.AuthMiddleware(), handlers.CreateVenueComment)
			venues.PATCH("/:slug", middleware.AuthMiddleware(), handlers.UpdateVenue)
			venues.DELETE("/:slug", middleware.AuthMiddleware(), handlers.DeleteVenue)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", handlers.ListPosts)
			posts.GET("/:slug", handlers.GetPost)
			posts.GET("/:slug/comments", handlers.ListPostComments)
			posts.POST("", middleware.AuthMiddleware(), handlers.CreatePost)
			posts.POST("/:slug/comments", middleware.AuthMiddleware(), handlers.CreatePostComment)
			posts.PATCH("/:slug", middleware.AuthMiddleware(), handlers.UpdatePost)
			posts.DELETE("/:slug", middleware.AuthMiddleware(), handlers.DeletePost)
		}

		api.DELETE("/comments/:comment_id", middleware.AuthMiddleware(), handlers.DeleteComment)

		favorites := api.Group("/favorites", middleware.AuthMiddleware())
		{
			favorites.POST("", handlers.CreateFavorite)
			favorites.GET("", handlers.ListFavorites)
			favorites.DELETE("/:favorite_id", handlers.DeleteFavorite)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("/preferences", handlers.GetNotificationPreferences)
			notifications.PUT("/preferences", handlers.UpdateNotificationPreferences)
			notifications.GET("/upcoming", handlers.GetUpcomingNotifications)
			notifications.GET("/comments", handlers.GetCommentNotifications)
			notifications.GET("/stream", handlers.NotificationStream)
		}

		moderation := api.Group("/moderation", middleware.AuthMiddleware(), middleware.RequireAdmin())
		{
			moderation.GET("/queue", handlers.GetModerationQueue)
			moderation.PATCH("/events/:event_id", handlers.ModerateEvent)
			moderation.PATCH("/venues/:venue_id", handlers.ModerateVenue)
			moderation.PATCH("/posts/:post_id", handlers.ModeratePost)
		}
	}

	return r
}
