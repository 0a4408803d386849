package bookings

import "time"

type BookingResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	UserName      string     `json:"user_name,omitempty"`
	UserEmail     string     `json:"user_email,omitempty"`
	EventID       string     `json:"event_id"`
	EventTitle    string     `json:"event_title,omitempty"`
	EventLocation string     `json:"event_location,omitempty"`
	EventDate     *time.Time `json:"event_date,omitempty"`
	NumTickets    int        `json:"num_tickets"`
	TotalAmount   float64    `json:"total_amount"`
	Status        string     `json:"status"`
	BookingDate   time.Time  `json:"booking_date"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

type PaginatedBookings struct {
	Bookings   []BookingResponse `json:"bookings"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}
