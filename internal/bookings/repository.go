package bookings

import (
	"context"
	"errors"
	"strings"
	"time"

	"gatherly/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Transactional lifecycle operations
	CreateWithReservation(ctx context.Context, booking *Booking) (*Quote, error)
	CancelWithRelease(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) (*Booking, bool, error)

	// Reads
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error)

	// Query layer
	ListAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
}

type repository struct {
	db        *gorm.DB
	allocator *Allocator
}

func NewRepository(db *gorm.DB, allocator *Allocator) Repository {
	return &repository{db: db, allocator: allocator}
}

// CreateWithReservation reserves seats and inserts the booking row in one
// transaction. Either both land or neither does: a failed insert rolls the
// seat decrement back, and a failed reservation never produces a row.
func (r *repository) CreateWithReservation(ctx context.Context, booking *Booking) (*Quote, error) {
	var quote *Quote

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q, err := r.allocator.Reserve(tx, booking.EventID, booking.NumTickets)
		if err != nil {
			return err
		}

		booking.TotalAmount = q.TotalAmount
		if err := tx.Create(booking).Error; err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to create booking", err)
		}

		quote = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// CancelWithRelease cancels a booking and returns the seats exactly once.
// The booking row is locked before any decision is made, so concurrent
// cancels of the same booking serialize: the first one releases, the rest
// see the cancelled status and return it unchanged. The released flag tells
// the caller whether this call did the release.
func (r *repository) CancelWithRelease(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) (*Booking, bool, error) {
	var booking Booking
	released := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", bookingID).
			First(&booking).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindNotFound, "booking not found")
		}
		if err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to load booking", err)
		}

		if !isAdmin && booking.UserID != requesterID {
			return apperrors.New(apperrors.KindForbidden, "you can only cancel your own bookings")
		}

		// Already cancelled: idempotent success, no seat movement.
		if booking.IsCancelled() {
			return nil
		}

		if err := r.allocator.Release(tx, booking.EventID, booking.NumTickets); err != nil {
			return err
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": now,
			"updated_by":   requesterID,
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.KindInternal, "failed to update booking status", err)
		}

		booking.Status = StatusCancelled
		booking.CancelledAt = &now
		booking.UpdatedBy = &requesterID
		released = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &booking, released, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByIDWithRelations(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Event").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	return r.list(ctx, query, nil)
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	return r.list(ctx, query, &userID)
}

func (r *repository) list(ctx context.Context, query BookingListQuery, userID *uuid.UUID) ([]Booking, int64, error) {
	var bookings []Booking
	var totalCount int64

	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	db := r.db.WithContext(ctx).
		Model(&Booking{}).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN events ON events.id = bookings.event_id")

	if userID != nil {
		db = db.Where("bookings.user_id = ?", *userID)
	}

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		if userID == nil {
			// Admin view searches the user identity too
			db = db.Where(
				"LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(events.title) LIKE ? OR LOWER(events.location) LIKE ?",
				searchTerm, searchTerm, searchTerm, searchTerm)
		} else {
			db = db.Where("LOWER(events.title) LIKE ? OR LOWER(events.location) LIKE ?",
				searchTerm, searchTerm)
		}
	}

	if query.Status != "" {
		db = db.Where("bookings.status = ?", query.Status)
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	orderClause, err := sortClause(query.SortBy, query.SortOrder)
	if err != nil {
		return nil, 0, err
	}

	offset := (query.Page - 1) * query.Limit
	err = db.Preload("User").
		Preload("Event").
		Order(orderClause).
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

// sortColumns maps client sort fields to qualified columns. Anything outside
// this map is rejected, never interpolated into SQL.
var sortColumns = map[string]string{
	"booking_date": "bookings.booking_date",
	"event_date":   "events.event_date",
	"status":       "bookings.status",
	"total_amount": "bookings.total_amount",
	"num_tickets":  "bookings.num_tickets",
}

func sortClause(sortBy, sortOrder string) (string, error) {
	if sortBy == "" {
		sortBy = "booking_date"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return "", apperrors.Newf(apperrors.KindValidation, "unsupported sort field %q", sortBy)
	}

	switch strings.ToLower(sortOrder) {
	case "", "desc":
		return column + " DESC", nil
	case "asc":
		return column + " ASC", nil
	default:
		return "", apperrors.Newf(apperrors.KindValidation, "unsupported sort order %q", sortOrder)
	}
}
