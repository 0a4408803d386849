package stats

import (
	"context"

	"gatherly/internal/shared/apperrors"

	"gorm.io/gorm"
)

// Overview is the admin dashboard aggregate. Revenue and ticket counts only
// include bookings that still hold seats.
type Overview struct {
	TotalEvents       int64   `json:"total_events"`
	ActiveEvents      int64   `json:"active_events"`
	InactiveEvents    int64   `json:"inactive_events"`
	TotalBookings     int64   `json:"total_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	TicketsSold       int64   `json:"tickets_sold"`
	GrossRevenue      float64 `json:"gross_revenue"`
}

type Repository interface {
	GetOverview(ctx context.Context) (*Overview, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOverview(ctx context.Context) (*Overview, error) {
	overview := &Overview{}
	db := r.db.WithContext(ctx)

	type eventCounts struct {
		Total  int64
		Active int64
	}
	var ec eventCounts
	err := db.Raw(`
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE is_active) AS active
		FROM events
	`).Scan(&ec).Error
	if err != nil {
		return nil, err
	}
	overview.TotalEvents = ec.Total
	overview.ActiveEvents = ec.Active
	overview.InactiveEvents = ec.Total - ec.Active

	type bookingCounts struct {
		Total     int64
		Cancelled int64
		Tickets   int64
		Revenue   float64
	}
	var bc bookingCounts
	err = db.Raw(`
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE status = 'cancelled') AS cancelled,
		       COALESCE(SUM(num_tickets) FILTER (WHERE status <> 'cancelled'), 0) AS tickets,
		       COALESCE(SUM(total_amount) FILTER (WHERE status <> 'cancelled'), 0) AS revenue
		FROM bookings
	`).Scan(&bc).Error
	if err != nil {
		return nil, err
	}
	overview.TotalBookings = bc.Total
	overview.CancelledBookings = bc.Cancelled
	overview.TicketsSold = bc.Tickets
	overview.GrossRevenue = bc.Revenue

	return overview, nil
}

type Service interface {
	GetOverview(ctx context.Context) (*Overview, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOverview(ctx context.Context) (*Overview, error) {
	overview, err := s.repo.GetOverview(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to compute stats overview", err)
	}
	return overview, nil
}
