package events

import (
	"gatherly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller) {
	events := router.Group("/events")
	{
		// Public catalog reads
		events.GET("", controller.GetAllEvents)
		events.GET("/:id", controller.GetEvent)

		// Admin mutations
		admin := events.Group("")
		admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateEvent)
			admin.PUT("/:id", controller.UpdateEvent)
			admin.DELETE("/:id", controller.DeleteEvent)
		}
	}
}
