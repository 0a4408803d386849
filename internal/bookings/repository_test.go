package bookings

import (
	"testing"

	"gatherly/internal/shared/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestSortClauseAllowList(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		expected  string
	}{
		{"", "", "bookings.booking_date DESC"},
		{"booking_date", "asc", "bookings.booking_date ASC"},
		{"event_date", "desc", "events.event_date DESC"},
		{"status", "", "bookings.status DESC"},
		{"total_amount", "asc", "bookings.total_amount ASC"},
		{"num_tickets", "ASC", "bookings.num_tickets ASC"},
	}

	for _, tt := range tests {
		clause, err := sortClause(tt.sortBy, tt.sortOrder)
		assert.NoError(t, err, "sortBy=%q sortOrder=%q", tt.sortBy, tt.sortOrder)
		assert.Equal(t, tt.expected, clause)
	}
}

func TestSortClauseRejectsUnknownField(t *testing.T) {
	// Anything outside the allow-list must be rejected before it reaches SQL
	for _, field := range []string{"user_id", "id; DROP TABLE bookings", "created_at"} {
		_, err := sortClause(field, "asc")
		assert.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	}
}

func TestSortClauseRejectsUnknownOrder(t *testing.T) {
	_, err := sortClause("booking_date", "sideways")
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(100, 0))
	assert.Equal(t, 0, CalculateTotalPages(0, 10))
	assert.Equal(t, 1, CalculateTotalPages(1, 10))
	assert.Equal(t, 1, CalculateTotalPages(10, 10))
	assert.Equal(t, 2, CalculateTotalPages(11, 10))
	assert.Equal(t, 10, CalculateTotalPages(95, 10))
}
