package categories

import (
	"gatherly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCategoryRoutes(router *gin.RouterGroup, controller Controller) {
	categories := router.Group("/categories")
	{
		categories.GET("", controller.GetAllCategories)
		categories.GET("/:id", controller.GetCategory)

		categories.POST("", middleware.JWTAuth(), middleware.RequireAdmin(), controller.CreateCategory)
	}
}
