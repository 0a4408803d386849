package routes

import (
	"net/http"
	"time"

	"gatherly/internal/auth"
	"gatherly/internal/bookings"
	"gatherly/internal/categories"
	"gatherly/internal/events"
	"gatherly/internal/notifications"
	"gatherly/internal/shared/config"
	"gatherly/internal/shared/database"
	"gatherly/internal/stats"
	"gatherly/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier bookings.Notifier

	eventService events.Service
}

// NewRouter creates a new router instance. The notifier is optional; nil
// disables booking notifications.
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	r := &Router{
		config: cfg,
		db:     db,
	}
	if producer != nil {
		r.notifier = notifications.NewBookingNotifier(producer)
	}
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupCategoryRoutes(api)

		// Events must come before bookings: the booking service reuses the
		// event service for cache invalidation
		r.setupEventRoutes(api)
		r.setupBookingRoutes(api)

		r.setupStatsRoutes(api)
	}
}

func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "gatherly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "gatherly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

func (r *Router) setupCategoryRoutes(rg *gin.RouterGroup) {
	categoryRepo := categories.NewRepository(r.db.GetPostgreSQL())
	categoryService := categories.NewService(categoryRepo)
	categoryController := categories.NewController(categoryService)

	categories.SetupCategoryRoutes(rg, categoryController)
}

func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)

	if r.db.GetRedis() != nil {
		cacheService := cache.NewService(r.db.GetRedis())
		eventService.SetCacheService(cacheService, r.config.Redis.EventCacheTTL)
	}

	r.eventService = eventService

	eventController := events.NewController(eventService)
	events.SetupEventRoutes(rg, eventController)
}

func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL(), bookings.NewAllocator())
	bookingService := bookings.NewService(bookingRepo, r.config.Booking.TxTimeout)

	if r.eventService != nil {
		bookingService.SetCacheInvalidator(r.eventService)
	}
	if r.notifier != nil {
		bookingService.SetNotifier(r.notifier)
	}

	bookingController := bookings.NewController(bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)
}

func (r *Router) setupStatsRoutes(rg *gin.RouterGroup) {
	statsRepo := stats.NewRepository(r.db.GetPostgreSQL())
	statsService := stats.NewService(statsRepo)
	statsController := stats.NewController(statsService)

	stats.SetupStatsRoutes(rg, statsController)
}
