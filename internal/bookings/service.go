package bookings

import (
	"context"
	"errors"
	"time"

	"gatherly/internal/shared/apperrors"
	"gatherly/internal/users"
	"gatherly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier publishes booking lifecycle events. Publishing is best-effort:
// a broker outage never fails a booking.
type Notifier interface {
	BookingCreated(ctx context.Context, booking *Booking)
	BookingCancelled(ctx context.Context, booking *Booking)
}

// EventCacheInvalidator drops cached event reads after a seat count change.
type EventCacheInvalidator interface {
	InvalidateEvent(ctx context.Context, eventID uuid.UUID) error
}

type Service interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole string) (*BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole string) (*BookingResponse, error)
	GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error)
	GetUserBookings(ctx context.Context, userID, requesterID uuid.UUID, requesterRole string, query BookingListQuery) (*PaginatedBookings, error)

	SetNotifier(notifier Notifier)
	SetCacheInvalidator(invalidator EventCacheInvalidator)
}

type service struct {
	repo        Repository
	txTimeout   time.Duration
	notifier    Notifier
	invalidator EventCacheInvalidator
	log         *logger.Logger
}

func NewService(repo Repository, txTimeout time.Duration) Service {
	if txTimeout <= 0 {
		txTimeout = 5 * time.Second
	}
	return &service{
		repo:      repo,
		txTimeout: txTimeout,
		log:       logger.GetDefault(),
	}
}

func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

func (s *service) SetCacheInvalidator(invalidator EventCacheInvalidator) {
	s.invalidator = invalidator
}

func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "invalid event id", err)
	}

	if req.NumTickets <= 0 {
		return nil, apperrors.New(apperrors.KindValidation, "ticket quantity must be positive")
	}

	status := StatusPending
	if req.Status != "" {
		status = Status(req.Status)
		if !status.IsValidInitial() {
			return nil, apperrors.Newf(apperrors.KindValidation,
				"%q is not a valid initial booking status", req.Status)
		}
	}

	booking := &Booking{
		UserID:     userID,
		EventID:    eventID,
		NumTickets: req.NumTickets,
		Status:     status,
	}

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	if _, err := s.repo.CreateWithReservation(txCtx, booking); err != nil {
		return nil, s.classifyTxError(err, "booking creation")
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), eventID.String(), userID.String())
	s.afterSeatChange(ctx, booking, true)

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole string) (*BookingResponse, error) {
	isAdmin := requesterRole == string(users.RoleAdmin)

	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	booking, released, err := s.repo.CancelWithRelease(txCtx, bookingID, requesterID, isAdmin)
	if err != nil {
		return nil, s.classifyTxError(err, "booking cancellation")
	}

	if released {
		s.log.LogBookingCancelled(ctx, booking.ID.String(), booking.EventID.String(), requesterID.String())
		s.afterSeatChange(ctx, booking, false)
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetBookingByID(ctx context.Context, bookingID, requesterID uuid.UUID, requesterRole string) (*BookingResponse, error) {
	booking, err := s.repo.GetByIDWithRelations(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "booking not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get booking", err)
	}

	if requesterRole != string(users.RoleAdmin) && booking.UserID != requesterID {
		return nil, apperrors.New(apperrors.KindForbidden, "you can only view your own bookings")
	}

	resp := booking.ToResponse()
	return &resp, nil
}

func (s *service) GetAllBookings(ctx context.Context, query BookingListQuery) (*PaginatedBookings, error) {
	bookings, totalCount, err := s.repo.ListAll(ctx, query)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list bookings", err)
	}

	return paginate(bookings, totalCount, query), nil
}

func (s *service) GetUserBookings(ctx context.Context, userID, requesterID uuid.UUID, requesterRole string, query BookingListQuery) (*PaginatedBookings, error) {
	if requesterRole != string(users.RoleAdmin) && userID != requesterID {
		return nil, apperrors.New(apperrors.KindForbidden, "you can only view your own bookings")
	}

	bookings, totalCount, err := s.repo.ListByUser(ctx, userID, query)
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindInternal {
			return nil, err
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list bookings", err)
	}

	return paginate(bookings, totalCount, query), nil
}

// classifyTxError turns a transaction deadline into Unavailable; typed
// errors pass through untouched.
func (s *service) classifyTxError(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.KindUnavailable, op+" timed out", err)
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.KindInternal, op+" failed", err)
}

// afterSeatChange runs the best-effort side effects of a committed seat
// mutation. Failures here are logged; the booking outcome stands.
func (s *service) afterSeatChange(ctx context.Context, booking *Booking, created bool) {
	if s.invalidator != nil {
		if err := s.invalidator.InvalidateEvent(ctx, booking.EventID); err != nil {
			s.log.Warn("event cache invalidation failed",
				"event_id", booking.EventID.String(), "error", err)
		}
	}

	if s.notifier != nil {
		if created {
			s.notifier.BookingCreated(ctx, booking)
		} else {
			s.notifier.BookingCancelled(ctx, booking)
		}
	}
}

func paginate(bookings []Booking, totalCount int64, query BookingListQuery) *PaginatedBookings {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	responses := make([]BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = bookings[i].ToResponse()
	}

	return &PaginatedBookings{
		Bookings:   responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: CalculateTotalPages(totalCount, query.Limit),
	}
}

// CalculateTotalPages rounds the page count up so a partial page still counts.
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := totalCount / int64(limit)
	if totalCount%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
