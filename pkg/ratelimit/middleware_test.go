package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRateLimitType(t *testing.T) {
	cases := []struct {
		path string
		want RateLimitType
	}{
		{"/health", RateLimitTypeHealth},
		{"/ping", RateLimitTypeHealth},
		{"/api/v1/auth/login", RateLimitTypeAuth},
		{"/api/v1/admin/stats", RateLimitTypeAdmin},
		{"/api/v1/bookings", RateLimitTypeBookingCritical},
		{"/api/v1/bookings/:id/cancel", RateLimitTypeBookingCritical},
		{"/api/v1/bookings/:id", RateLimitTypeBooking},
		{"/api/v1/events", RateLimitTypePublic},
		{"/api/v1/categories", RateLimitTypePublic},
		{"/api/v1/users/123/bookings", RateLimitTypeUser},
		{"/somewhere/else", RateLimitTypeDefault},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, getRateLimitType(tc.path), tc.path)
	}
}
