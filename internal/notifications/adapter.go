package notifications

import (
	"context"
	"time"

	"gatherly/internal/bookings"
	"gatherly/pkg/logger"

	"github.com/google/uuid"
)

// BookingNotifier adapts the Kafka producer to the booking service. Publish
// failures are logged and dropped; the booking already committed.
type BookingNotifier struct {
	producer Producer
	log      *logger.Logger
}

func NewBookingNotifier(producer Producer) *BookingNotifier {
	return &BookingNotifier{
		producer: producer,
		log:      logger.GetDefault(),
	}
}

func (n *BookingNotifier) BookingCreated(ctx context.Context, booking *bookings.Booking) {
	n.publish(ctx, NotificationTypeBookingCreated, booking)
}

func (n *BookingNotifier) BookingCancelled(ctx context.Context, booking *bookings.Booking) {
	n.publish(ctx, NotificationTypeBookingCancelled, booking)
}

func (n *BookingNotifier) publish(ctx context.Context, notificationType NotificationType, booking *bookings.Booking) {
	notification := &BookingNotification{
		ID:          uuid.New(),
		Type:        notificationType,
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		EventID:     booking.EventID,
		NumTickets:  booking.NumTickets,
		TotalAmount: booking.TotalAmount,
		OccurredAt:  time.Now(),
	}

	if err := n.producer.Publish(ctx, notification); err != nil {
		n.log.Error("failed to publish booking notification",
			"type", string(notificationType),
			"booking_id", booking.ID.String(),
			"error", err)
	}
}
