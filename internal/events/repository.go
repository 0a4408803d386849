package events

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(event *Event) error
	GetByID(id uuid.UUID) (*Event, error)
	GetActiveByID(id uuid.UUID) (*Event, error)
	GetByTitleAndDate(title string, eventDate time.Time) (*Event, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Event, error)
	Resize(id uuid.UUID, newCapacity int, adminID uuid.UUID) error
	Deactivate(id uuid.UUID, adminID uuid.UUID) error
	GetAll(query EventListQuery) ([]Event, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(event *Event) error {
	return r.db.Create(event).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Event, error) {
	var event Event
	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetActiveByID(id uuid.UUID) (*Event, error) {
	var event Event
	if err := r.db.Where("id = ? AND is_active = ?", id, true).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) GetByTitleAndDate(title string, eventDate time.Time) (*Event, error) {
	var event Event
	err := r.db.Where("LOWER(title) = ? AND event_date = ?", strings.ToLower(title), eventDate).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	var event Event

	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&event).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

// ErrCapacityBelowSold is returned when a capacity change would drop below
// the number of seats already sold.
var ErrCapacityBelowSold = errors.New("capacity below sold seats")

// Resize changes capacity and shifts available_seats by the same delta in one
// guarded statement, so it cannot race with concurrent seat reservations.
func (r *repository) Resize(id uuid.UUID, newCapacity int, adminID uuid.UUID) error {
	result := r.db.Model(&Event{}).
		Where("id = ? AND capacity - available_seats <= ?", id, newCapacity).
		UpdateColumns(map[string]interface{}{
			"capacity":        newCapacity,
			"available_seats": gorm.Expr("available_seats + (? - capacity)", newCapacity),
			"updated_by":      adminID,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var event Event
		if err := r.db.Select("id").Where("id = ?", id).First(&event).Error; err != nil {
			return err
		}
		return ErrCapacityBelowSold
	}
	return nil
}

// Deactivate soft-deletes an event. Rows are never removed so historical
// bookings keep their foreign key target.
func (r *repository) Deactivate(id uuid.UUID, adminID uuid.UUID) error {
	result := r.db.Model(&Event{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": adminID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) GetAll(query EventListQuery) ([]Event, int64, error) {
	var events []Event
	var totalCount int64

	db := r.db.Model(&Event{}).Where("is_active = ?", true)

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if query.Location != "" {
		db = db.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(query.Location)+"%")
	}

	if query.CategoryID != "" {
		if categoryID, err := uuid.Parse(query.CategoryID); err == nil {
			db = db.Where("category_id = ?", categoryID)
		}
	}

	if query.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("event_date >= ?", dateFrom)
		}
	}

	if query.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			// Include the entire end day
			db = db.Where("event_date < ?", dateTo.Add(24*time.Hour))
		}
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Order("event_date ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&events).Error

	return events, totalCount, err
}
