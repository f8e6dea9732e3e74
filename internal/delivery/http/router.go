package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gdugdh24/roommate-match-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/roommate-match-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/roommate-match-backend/internal/domain"
	"github.com/gdugdh24/roommate-match-backend/internal/infrastructure/logger"
)

type Router struct {
	profileHandler *handler.ProfileHandler
	matchHandler   *handler.MatchHandler
	authMiddleware *middleware.AuthMiddleware
	allowedOrigins []string
	log            *logger.Logger
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
	log *logger.Logger,
) *Router {
	return &Router{
		profileHandler: profileHandler,
		matchHandler:   matchHandler,
		authMiddleware: authMiddleware,
		allowedOrigins: allowedOrigins,
		log:            log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.log))
	if len(r.allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     r.allowedOrigins,
			AllowMethods:     []string{"GET", "PUT", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(r.authMiddleware.RequireAuth())
	{
		profile := protected.Group("/profile")
		{
			profile.GET("/me", r.profileHandler.GetMyProfile)
			profile.PUT("/me", r.profileHandler.SaveMyProfile)
			profile.GET("/:user_id", r.profileHandler.GetProfileByUserID)
		}

		matches := protected.Group("/matches")
		{
			matches.GET("/roommates",
				r.authMiddleware.RequireRole(domain.RoleSeeker, domain.RoleAdmin),
				r.matchHandler.GetRoommateMatches)
			matches.GET("/properties", r.matchHandler.GetPropertyMatches)
		}
	}

	return router
}
