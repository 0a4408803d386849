package bookings

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gatherly/internal/events"
	"gatherly/internal/shared/apperrors"
	"gatherly/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB connects to the database named by BOOKING_TEST_DSN, or skips.
// These tests exercise the real conditional UPDATE against postgres; they
// cannot run on mocks.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("BOOKING_TEST_DSN")
	if dsn == "" {
		t.Skip("BOOKING_TEST_DSN not set, skipping postgres integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error)
	require.NoError(t, db.AutoMigrate(&users.User{}, &events.Event{}, &Booking{}))

	return db
}

func seedEvent(t *testing.T, db *gorm.DB, capacity int, price float64) *events.Event {
	t.Helper()

	event := &events.Event{
		Title:          fmt.Sprintf("Load Test %s", uuid.New()),
		Location:       "Test Hall",
		EventDate:      time.Now().Add(24 * time.Hour),
		Capacity:       capacity,
		AvailableSeats: capacity,
		Price:          price,
		IsActive:       true,
		CreatedBy:      seedUser(t, db).ID,
	}
	require.NoError(t, db.Create(event).Error)
	t.Cleanup(func() {
		db.Where("event_id = ?", event.ID).Delete(&Booking{})
		db.Delete(event)
	})
	return event
}

func seedUser(t *testing.T, db *gorm.DB) *users.User {
	t.Helper()

	user := &users.User{
		Name:     "Test User",
		Email:    fmt.Sprintf("user-%s@test.local", uuid.New()),
		Password: "x",
		Role:     users.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	t.Cleanup(func() { db.Delete(user) })
	return user
}

func currentSeats(t *testing.T, db *gorm.DB, eventID uuid.UUID) int {
	t.Helper()

	var event events.Event
	require.NoError(t, db.Where("id = ?", eventID).First(&event).Error)
	return event.AvailableSeats
}

// TestNoOversell fires capacity+5 concurrent single-seat reservations and
// requires exactly capacity of them to succeed.
func TestNoOversell(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db, NewAllocator())

	const capacity = 10
	event := seedEvent(t, db, capacity, 50)
	user := seedUser(t, db)
	ctx := context.Background()

	const attempts = capacity + 5
	var wg sync.WaitGroup
	var successCount, insufficientCount int64

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			booking := &Booking{
				UserID:     user.ID,
				EventID:    event.ID,
				NumTickets: 1,
				Status:     StatusConfirmed,
			}
			_, err := repo.CreateWithReservation(ctx, booking)
			if err == nil {
				atomic.AddInt64(&successCount, 1)
				return
			}
			if apperrors.KindOf(err) == apperrors.KindInsufficientSeats {
				atomic.AddInt64(&insufficientCount, 1)
				return
			}
			t.Errorf("unexpected error: %v", err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(capacity), successCount)
	assert.Equal(t, int64(attempts-capacity), insufficientCount)
	assert.Equal(t, 0, currentSeats(t, db, event.ID))
}

// TestReservationAtomicity forces the booking insert to fail after the seat
// decrement and checks the decrement was rolled back with it.
func TestReservationAtomicity(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db, NewAllocator())

	event := seedEvent(t, db, 10, 50)
	ctx := context.Background()

	// Nonexistent user violates the user_id foreign key on insert
	booking := &Booking{
		UserID:     uuid.New(),
		EventID:    event.ID,
		NumTickets: 3,
		Status:     StatusConfirmed,
	}
	_, err := repo.CreateWithReservation(ctx, booking)
	require.Error(t, err)

	assert.Equal(t, 10, currentSeats(t, db, event.ID),
		"failed insert must roll the seat decrement back")

	var count int64
	require.NoError(t, db.Model(&Booking{}).Where("event_id = ?", event.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// TestReserveReleaseRoundTrip books and cancels through the repository and
// expects the ledger to return to its starting state.
func TestReserveReleaseRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db, NewAllocator())

	event := seedEvent(t, db, 10, 50)
	user := seedUser(t, db)
	ctx := context.Background()

	booking := &Booking{
		UserID:     user.ID,
		EventID:    event.ID,
		NumTickets: 3,
		Status:     StatusPending,
	}
	quote, err := repo.CreateWithReservation(ctx, booking)
	require.NoError(t, err)
	assert.Equal(t, float64(150), quote.TotalAmount)
	assert.Equal(t, 7, quote.SeatsLeft)
	assert.Equal(t, 7, currentSeats(t, db, event.ID))

	cancelled, released, err := repo.CancelWithRelease(ctx, booking.ID, user.ID, false)
	require.NoError(t, err)
	assert.True(t, released)
	assert.Equal(t, StatusCancelled, cancelled.Status)
	assert.Equal(t, 10, currentSeats(t, db, event.ID))

	// Second cancel: idempotent, no seat movement
	again, released, err := repo.CancelWithRelease(ctx, booking.ID, user.ID, false)
	require.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, StatusCancelled, again.Status)
	assert.Equal(t, 10, currentSeats(t, db, event.ID))
}

// TestConcurrentCancelReleasesOnce races two cancels of the same booking and
// checks the seats come back exactly once.
func TestConcurrentCancelReleasesOnce(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db, NewAllocator())

	event := seedEvent(t, db, 10, 50)
	user := seedUser(t, db)
	ctx := context.Background()

	booking := &Booking{
		UserID:     user.ID,
		EventID:    event.ID,
		NumTickets: 4,
		Status:     StatusConfirmed,
	}
	_, err := repo.CreateWithReservation(ctx, booking)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var releasedCount int64
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			_, released, err := repo.CancelWithRelease(ctx, booking.ID, user.ID, false)
			if err != nil {
				t.Errorf("cancel failed: %v", err)
				return
			}
			if released {
				atomic.AddInt64(&releasedCount, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), releasedCount)
	assert.Equal(t, 10, currentSeats(t, db, event.ID))
}
