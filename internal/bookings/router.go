package bookings

import (
	"gatherly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller) {
	bookings := router.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("", controller.CreateBooking)
		bookings.POST("/:id/cancel", controller.CancelBooking)
		bookings.GET("/:id", controller.GetBooking)

		bookings.GET("", middleware.RequireAdmin(), controller.GetAllBookings)
	}

	// Owner-or-admin listing under the user resource
	userBookings := router.Group("/users/:id/bookings")
	userBookings.Use(middleware.JWTAuth())
	{
		userBookings.GET("", controller.GetUserBookings)
	}
}
