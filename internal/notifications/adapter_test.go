package notifications

import (
	"context"
	"errors"
	"testing"

	"gatherly/internal/bookings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type captureProducer struct {
	published []*BookingNotification
	err       error
}

func (p *captureProducer) Publish(ctx context.Context, n *BookingNotification) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, n)
	return nil
}

func (p *captureProducer) HealthCheck(ctx context.Context) error { return nil }
func (p *captureProducer) Close() error                          { return nil }

func TestBookingNotifierPublishesLifecycleRecords(t *testing.T) {
	producer := &captureProducer{}
	notifier := NewBookingNotifier(producer)

	booking := &bookings.Booking{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		EventID:     uuid.New(),
		NumTickets:  3,
		TotalAmount: 150,
	}

	notifier.BookingCreated(context.Background(), booking)
	notifier.BookingCancelled(context.Background(), booking)

	assert.Len(t, producer.published, 2)
	assert.Equal(t, NotificationTypeBookingCreated, producer.published[0].Type)
	assert.Equal(t, NotificationTypeBookingCancelled, producer.published[1].Type)
	assert.Equal(t, booking.EventID.String(), producer.published[0].PartitionKey())
	assert.Equal(t, 3, producer.published[0].NumTickets)
	assert.Equal(t, float64(150), producer.published[0].TotalAmount)
}

func TestBookingNotifierSwallowsPublishFailures(t *testing.T) {
	producer := &captureProducer{err: errors.New("broker down")}
	notifier := NewBookingNotifier(producer)

	booking := &bookings.Booking{ID: uuid.New()}

	// Must not panic or propagate; the booking already committed
	assert.NotPanics(t, func() {
		notifier.BookingCreated(context.Background(), booking)
	})
	assert.Empty(t, producer.published)
}
