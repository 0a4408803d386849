package bookings

import (
	"context"
	"testing"
	"time"

	"gatherly/internal/shared/apperrors"
	"gatherly/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakeLedger implements Repository against an in-memory seat ledger with the
// same contract the SQL implementation honors: conditional reserve, exactly
// one release per cancellation, owner-or-admin checks under the row lock.
type fakeLedger struct {
	eventID        uuid.UUID
	price          float64
	capacity       int
	availableSeats int
	bookings       map[uuid.UUID]*Booking
}

func newFakeLedger(capacity int, price float64) *fakeLedger {
	return &fakeLedger{
		eventID:        uuid.New(),
		price:          price,
		capacity:       capacity,
		availableSeats: capacity,
		bookings:       make(map[uuid.UUID]*Booking),
	}
}

func (f *fakeLedger) CreateWithReservation(ctx context.Context, booking *Booking) (*Quote, error) {
	if booking.EventID != f.eventID {
		return nil, apperrors.New(apperrors.KindNotFound, "event not found")
	}
	if f.availableSeats < booking.NumTickets {
		return nil, apperrors.Newf(apperrors.KindInsufficientSeats,
			"only %d seats available, requested %d", f.availableSeats, booking.NumTickets)
	}

	f.availableSeats -= booking.NumTickets
	booking.ID = uuid.New()
	booking.TotalAmount = f.price * float64(booking.NumTickets)
	booking.BookingDate = time.Now()
	f.bookings[booking.ID] = booking

	return &Quote{
		UnitPrice:   f.price,
		TotalAmount: booking.TotalAmount,
		SeatsLeft:   f.availableSeats,
	}, nil
}

func (f *fakeLedger) CancelWithRelease(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) (*Booking, bool, error) {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, false, apperrors.New(apperrors.KindNotFound, "booking not found")
	}
	if !isAdmin && booking.UserID != requesterID {
		return nil, false, apperrors.New(apperrors.KindForbidden, "you can only cancel your own bookings")
	}
	if booking.IsCancelled() {
		return booking, false, nil
	}

	f.availableSeats += booking.NumTickets
	now := time.Now()
	booking.Status = StatusCancelled
	booking.CancelledAt = &now
	return booking, true, nil
}

func (f *fakeLedger) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, apperrors.New(apperrors.KindNotFound, "booking not found")
	}
	return booking, nil
}

func (f *fakeLedger) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeLedger) ListAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLedger) ListByUser(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	var out []Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func TestBookingLifecycleScenario(t *testing.T) {
	// Capacity 10, price 50: book 3 seats, fail to book 8 more, cancel,
	// and the ledger is back where it started.
	ledger := newFakeLedger(10, 50)
	svc := NewService(ledger, time.Second)
	userID := uuid.New()
	ctx := context.Background()

	booked, err := svc.CreateBooking(ctx, userID, CreateBookingRequest{
		EventID:    ledger.eventID.String(),
		NumTickets: 3,
	})
	assert.NoError(t, err)
	assert.Equal(t, float64(150), booked.TotalAmount)
	assert.Equal(t, "pending", booked.Status)
	assert.Equal(t, 7, ledger.availableSeats)

	_, err = svc.CreateBooking(ctx, userID, CreateBookingRequest{
		EventID:    ledger.eventID.String(),
		NumTickets: 8,
	})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindInsufficientSeats, apperrors.KindOf(err))
	assert.Equal(t, 7, ledger.availableSeats, "failed booking must not touch the seat count")

	bookingID := uuid.MustParse(booked.ID)
	cancelled, err := svc.CancelBooking(ctx, bookingID, userID, string(users.RoleUser))
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 10, ledger.availableSeats)
}

func TestCancelBookingIsIdempotent(t *testing.T) {
	ledger := newFakeLedger(10, 50)
	svc := NewService(ledger, time.Second)
	userID := uuid.New()
	ctx := context.Background()

	booked, err := svc.CreateBooking(ctx, userID, CreateBookingRequest{
		EventID:    ledger.eventID.String(),
		NumTickets: 4,
	})
	assert.NoError(t, err)
	assert.Equal(t, 6, ledger.availableSeats)

	bookingID := uuid.MustParse(booked.ID)

	first, err := svc.CancelBooking(ctx, bookingID, userID, string(users.RoleUser))
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", first.Status)
	assert.Equal(t, 10, ledger.availableSeats)

	// Second cancel succeeds without moving seats again
	second, err := svc.CancelBooking(ctx, bookingID, userID, string(users.RoleUser))
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", second.Status)
	assert.Equal(t, 10, ledger.availableSeats, "seats must be released exactly once")
}

func TestCancelBookingForbiddenForStrangers(t *testing.T) {
	ledger := newFakeLedger(10, 50)
	svc := NewService(ledger, time.Second)
	owner := uuid.New()
	stranger := uuid.New()
	ctx := context.Background()

	booked, err := svc.CreateBooking(ctx, owner, CreateBookingRequest{
		EventID:    ledger.eventID.String(),
		NumTickets: 2,
	})
	assert.NoError(t, err)

	bookingID := uuid.MustParse(booked.ID)

	_, err = svc.CancelBooking(ctx, bookingID, stranger, string(users.RoleUser))
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
	assert.Equal(t, 8, ledger.availableSeats, "forbidden cancel must not release seats")

	// An admin may cancel on the owner's behalf
	cancelled, err := svc.CancelBooking(ctx, bookingID, stranger, string(users.RoleAdmin))
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, 10, ledger.availableSeats)
}

func TestCreateBookingRejectsInvalidInitialStatus(t *testing.T) {
	ledger := newFakeLedger(10, 50)
	svc := NewService(ledger, time.Second)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		EventID:    ledger.eventID.String(),
		NumTickets: 1,
		Status:     "cancelled",
	})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Equal(t, 10, ledger.availableSeats)
}

func TestCreateBookingAcceptsConfirmedInitialStatus(t *testing.T) {
	ledger := newFakeLedger(10, 50)
	svc := NewService(ledger, time.Second)

	booked, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		EventID:    ledger.eventID.String(),
		NumTickets: 2,
		Status:     "confirmed",
	})
	assert.NoError(t, err)
	assert.Equal(t, "confirmed", booked.Status)
}

func TestCreateBookingRejectsZeroTickets(t *testing.T) {
	ledger := newFakeLedger(10, 50)
	svc := NewService(ledger, time.Second)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		EventID:    ledger.eventID.String(),
		NumTickets: 0,
	})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestGetUserBookingsForbiddenForStrangers(t *testing.T) {
	ledger := newFakeLedger(10, 50)
	svc := NewService(ledger, time.Second)
	owner := uuid.New()
	stranger := uuid.New()

	_, err := svc.GetUserBookings(context.Background(), owner, stranger, string(users.RoleUser), BookingListQuery{})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	_, err = svc.GetUserBookings(context.Background(), owner, stranger, string(users.RoleAdmin), BookingListQuery{})
	assert.NoError(t, err)
}

// timeoutRepo simulates a transaction that outlives its deadline.
type timeoutRepo struct {
	fakeLedger
}

func (r *timeoutRepo) CreateWithReservation(ctx context.Context, booking *Booking) (*Quote, error) {
	return nil, context.DeadlineExceeded
}

func TestCreateBookingTimeoutSurfacesAsUnavailable(t *testing.T) {
	svc := NewService(&timeoutRepo{}, time.Millisecond)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		EventID:    uuid.New().String(),
		NumTickets: 1,
	})
	assert.Error(t, err)
	assert.Equal(t, apperrors.KindUnavailable, apperrors.KindOf(err))
}

func TestEmptyListReturnsZeroTotal(t *testing.T) {
	ledger := newFakeLedger(10, 50)
	svc := NewService(ledger, time.Second)

	page, err := svc.GetAllBookings(context.Background(), BookingListQuery{Page: 3, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), page.TotalCount)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Bookings)
	assert.Equal(t, 3, page.Page)
}
