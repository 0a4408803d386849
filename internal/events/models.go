package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the catalog entity seats are sold against. Capacity only changes
// through an admin resize; AvailableSeats is written through the booking
// allocator and shifts with the resize delta, never below zero.
type Event struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title          string     `json:"title" gorm:"not null;size:255;uniqueIndex:idx_events_title_date"`
	Description    string     `json:"description" gorm:"type:text"`
	Location       string     `json:"location" gorm:"not null;size:255"`
	EventDate      time.Time  `json:"event_date" gorm:"not null;uniqueIndex:idx_events_title_date"`
	CategoryID     *uuid.UUID `json:"category_id" gorm:"type:uuid;index"`
	ImageURL       string     `json:"image_url" gorm:"size:500"`
	Capacity       int        `json:"capacity" gorm:"not null;check:capacity > 0"`
	AvailableSeats int        `json:"available_seats" gorm:"not null;check:available_seats >= 0"`
	Price          float64    `json:"price" gorm:"not null;check:price >= 0"`
	IsActive       bool       `json:"is_active" gorm:"default:true;index"`

	CreatedBy uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `json:"updated_by" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

type EventResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	EventDate      time.Time `json:"event_date"`
	CategoryID     string    `json:"category_id,omitempty"`
	ImageURL       string    `json:"image_url"`
	Capacity       int       `json:"capacity"`
	AvailableSeats int       `json:"available_seats"`
	BookedSeats    int       `json:"booked_seats"`
	Price          float64   `json:"price"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required,min=3,max=255"`
	Description string    `json:"description" binding:"max=2000"`
	Location    string    `json:"location" binding:"required,min=2,max=255"`
	EventDate   time.Time `json:"event_date" binding:"required"`
	CategoryID  string    `json:"category_id" binding:"omitempty,uuid"`
	ImageURL    string    `json:"image_url" binding:"omitempty,url"`
	Capacity    int       `json:"capacity" binding:"required,min=1,max=100000"`
	Price       float64   `json:"price" binding:"min=0"`
}

type UpdateEventRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=3,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Location    *string    `json:"location" binding:"omitempty,min=2,max=255"`
	EventDate   *time.Time `json:"event_date"`
	CategoryID  *string    `json:"category_id" binding:"omitempty,uuid"`
	ImageURL    *string    `json:"image_url" binding:"omitempty,url"`
	Capacity    *int       `json:"capacity" binding:"omitempty,min=1"`
	Price       *float64   `json:"price" binding:"omitempty,min=0"`
	IsActive    *bool      `json:"is_active"`
}

type EventListQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search"`
	Location   string `form:"location"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

func (e *Event) ToResponse() EventResponse {
	resp := EventResponse{
		ID:             e.ID.String(),
		Title:          e.Title,
		Description:    e.Description,
		Location:       e.Location,
		EventDate:      e.EventDate,
		ImageURL:       e.ImageURL,
		Capacity:       e.Capacity,
		AvailableSeats: e.AvailableSeats,
		BookedSeats:    e.Capacity - e.AvailableSeats,
		Price:          e.Price,
		IsActive:       e.IsActive,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.CategoryID != nil {
		resp.CategoryID = e.CategoryID.String()
	}
	return resp
}
