package stats

import (
	"net/http"

	"gatherly/internal/shared/middleware"
	"gatherly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetOverview(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetOverview(c *gin.Context) {
	overview, err := ctrl.service.GetOverview(c.Request.Context())
	if err != nil {
		response.RespondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Stats retrieved successfully", overview, nil)
}

func SetupStatsRoutes(router *gin.RouterGroup, controller Controller) {
	admin := router.Group("/admin/stats")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.GetOverview)
	}
}
