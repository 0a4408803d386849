package bookings

import (
	"errors"

	"gatherly/internal/events"
	"gatherly/internal/shared/apperrors"
	"gatherly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quote is what a successful reservation cost and left behind.
type Quote struct {
	UnitPrice   float64
	TotalAmount float64
	SeatsLeft   int
}

// Allocator owns every seat-count mutation on the events table. The check
// and the decrement happen in one conditional UPDATE, so two concurrent
// reservations can never both pass a stale availability check.
type Allocator struct {
	log *logger.Logger
}

func NewAllocator() *Allocator {
	return &Allocator{log: logger.GetDefault()}
}

// Reserve takes n seats from an event inside the caller's transaction.
// RowsAffected == 0 means the guard failed; a follow-up read tells apart a
// missing or inactive event from one that simply ran short of seats.
func (a *Allocator) Reserve(tx *gorm.DB, eventID uuid.UUID, n int) (*Quote, error) {
	if n <= 0 {
		return nil, apperrors.New(apperrors.KindValidation, "ticket quantity must be positive")
	}

	result := tx.Model(&events.Event{}).
		Where("id = ? AND is_active = ? AND available_seats >= ?", eventID, true, n).
		UpdateColumn("available_seats", gorm.Expr("available_seats - ?", n))
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to reserve seats", result.Error)
	}

	if result.RowsAffected == 0 {
		var event events.Event
		err := tx.Where("id = ? AND is_active = ?", eventID, true).First(&event).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "event not found")
		}
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to read event", err)
		}
		return nil, apperrors.Newf(apperrors.KindInsufficientSeats,
			"only %d seats available, requested %d", event.AvailableSeats, n)
	}

	// The UPDATE left the row locked for this transaction, so the read-back
	// of price and the new seat count is stable.
	var event events.Event
	if err := tx.Where("id = ?", eventID).First(&event).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to read event after reserve", err)
	}

	return &Quote{
		UnitPrice:   event.Price,
		TotalAmount: event.Price * float64(n),
		SeatsLeft:   event.AvailableSeats,
	}, nil
}

// Release returns n seats to an event inside the caller's transaction. The
// guard available_seats + n <= capacity rejects any release that would push
// the count past capacity; on an existing event that is a ledger corruption,
// not a user error, so it is logged and surfaced for rollback rather than
// silently clamped.
func (a *Allocator) Release(tx *gorm.DB, eventID uuid.UUID, n int) error {
	if n <= 0 {
		return apperrors.New(apperrors.KindValidation, "ticket quantity must be positive")
	}

	result := tx.Model(&events.Event{}).
		Where("id = ? AND available_seats + ? <= capacity", eventID, n).
		UpdateColumn("available_seats", gorm.Expr("available_seats + ?", n))
	if result.Error != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to release seats", result.Error)
	}

	if result.RowsAffected == 0 {
		var event events.Event
		err := tx.Where("id = ?", eventID).First(&event).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindNotFound, "event not found")
		}
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to read event", err)
		}

		a.log.LogIntegrityViolation(tx.Statement.Context, eventID.String(),
			"seat release would exceed capacity")
		return apperrors.Newf(apperrors.KindIntegrity,
			"releasing %d seats would exceed event capacity", n)
	}

	return nil
}
