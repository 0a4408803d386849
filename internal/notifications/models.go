package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingCreated   NotificationType = "booking.created"
	NotificationTypeBookingCancelled NotificationType = "booking.cancelled"
)

// BookingNotification is the record published for every committed seat
// change. Keyed by event id so all records for one event land on the same
// partition in order.
type BookingNotification struct {
	ID          uuid.UUID        `json:"id"`
	Type        NotificationType `json:"type"`
	BookingID   uuid.UUID        `json:"booking_id"`
	UserID      uuid.UUID        `json:"user_id"`
	EventID     uuid.UUID        `json:"event_id"`
	NumTickets  int              `json:"num_tickets"`
	TotalAmount float64          `json:"total_amount"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

func (n *BookingNotification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// PartitionKey routes all notifications for one event to the same partition.
func (n *BookingNotification) PartitionKey() string {
	return n.EventID.String()
}
