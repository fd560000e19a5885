package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gamermatch/gamermatch-backend/internal/delivery/http/handler"
	"github.com/gamermatch/gamermatch-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler       *handler.AuthHandler
	profileHandler    *handler.ProfileHandler
	discoveryHandler  *handler.DiscoveryHandler
	swipeHandler      *handler.SwipeHandler
	matchHandler      *handler.MatchHandler
	chatHandler       *handler.ChatHandler
	moderationHandler *handler.ModerationHandler
	gdprHandler       *handler.GDPRHandler
	adminHandler      *handler.AdminHandler
	authMiddleware    *middleware.AuthMiddleware
	log               zerolog.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	discoveryHandler *handler.DiscoveryHandler,
	swipeHandler *handler.SwipeHandler,
	matchHandler *handler.MatchHandler,
	chatHandler *handler.ChatHandler,
	moderationHandler *handler.ModerationHandler,
	gdprHandler *handler.GDPRHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
	log zerolog.Logger,
) *Router {
	return &Router{
		authHandler:       authHandler,
		profileHandler:    profileHandler,
		discoveryHandler:  discoveryHandler,
		swipeHandler:      swipeHandler,
		matchHandler:      matchHandler,
		chatHandler:       chatHandler,
		moderationHandler: moderationHandler,
		gdprHandler:       gdprHandler,
		adminHandler:      adminHandler,
		authMiddleware:    authMiddleware,
		log:               log,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.log))
	router.Use(middleware.Metrics())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", r.authHandler.Signup)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/refresh", r.authHandler.Refresh)
			auth.POST("/logout", r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/complete-onboarding", r.profileHandler.CompleteOnboarding)
				profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
			}

			// Discovery feed
			protected.GET("/discovery", r.discoveryHandler.GetCandidates)

			// Swipe routes
			protected.POST("/swipes", r.swipeHandler.CreateSwipe)

			// Match routes
			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.GetMatches)
				matches.DELETE("/:match_id", r.matchHandler.Unmatch)
				matches.GET("/:match_id/icebreakers", r.matchHandler.Icebreakers)
				matches.POST("/:match_id/messages", r.chatHandler.SendMessage)
				matches.GET("/:match_id/messages", r.chatHandler.GetMessages)
				matches.POST("/:match_id/read", r.chatHandler.MarkRead)
			}

			// Chat list
			protected.GET("/chats", r.chatHandler.GetChatList)

			// Moderation routes
			protected.POST("/blocks", r.moderationHandler.BlockUser)
			protected.GET("/blocks", r.moderationHandler.GetBlockedUsers)
			protected.DELETE("/blocks/:user_id", r.moderationHandler.UnblockUser)
			protected.POST("/reports", r.moderationHandler.ReportUser)

			// GDPR routes
			gdpr := protected.Group("/gdpr")
			{
				gdpr.GET("/export", r.gdprHandler.ExportData)
				gdpr.POST("/deletion", r.gdprHandler.RequestDeletion)
				gdpr.GET("/deletion", r.gdprHandler.GetDeletionStatus)
				gdpr.DELETE("/deletion", r.gdprHandler.CancelDeletion)
			}

			// Admin routes
			adminGroup := protected.Group("/admin")
			adminGroup.Use(r.authMiddleware.RequireAdmin())
			{
				adminGroup.GET("/stats", r.adminHandler.GetStats)
				adminGroup.GET("/reports", r.adminHandler.GetPendingReports)
				adminGroup.PUT("/reports/:report_id", r.adminHandler.ResolveReport)
				adminGroup.POST("/users/:user_id/ban", r.adminHandler.BanUser)
				adminGroup.DELETE("/users/:user_id/ban", r.adminHandler.UnbanUser)
			}
		}
	}

	return router
}
