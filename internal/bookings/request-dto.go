package bookings

type CreateBookingRequest struct {
	EventID    string `json:"event_id" binding:"required,uuid"`
	NumTickets int    `json:"num_tickets" binding:"required,min=1,max=100"`
	Status     string `json:"status" binding:"omitempty,oneof=pending confirmed"`
}

type BookingListQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	Status    string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=booking_date event_date status total_amount num_tickets"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}
