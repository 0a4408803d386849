package bookings

import (
	"time"

	"gatherly/internal/events"
	"gatherly/internal/users"

	"github.com/google/uuid"
)

// Booking is one ledger row: a user holding NumTickets seats against an
// event at the price quoted when the seats were reserved.
type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	EventID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"event_id"`
	NumTickets  int        `gorm:"not null;check:num_tickets > 0" json:"num_tickets"`
	TotalAmount float64    `gorm:"not null" json:"total_amount"`
	Status      Status     `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	BookingDate time.Time  `gorm:"autoCreateTime" json:"booking_date"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	UpdatedBy   *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User  *users.User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *events.Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

func (b *Booking) ToResponse() BookingResponse {
	resp := BookingResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		EventID:     b.EventID.String(),
		NumTickets:  b.NumTickets,
		TotalAmount: b.TotalAmount,
		Status:      b.Status.String(),
		BookingDate: b.BookingDate,
		CancelledAt: b.CancelledAt,
	}
	if b.User != nil {
		resp.UserName = b.User.Name
		resp.UserEmail = b.User.Email
	}
	if b.Event != nil {
		resp.EventTitle = b.Event.Title
		resp.EventLocation = b.Event.Location
		resp.EventDate = &b.Event.EventDate
	}
	return resp
}
