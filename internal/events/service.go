package events

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gatherly/internal/shared/apperrors"
	"gatherly/pkg/cache"
	"gatherly/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	cacheKeyEventDetail = "gatherly:events:detail:"
	cacheKeyEventList   = "gatherly:events:list:"

	patternEventDetail = "gatherly:events:detail:*"
	patternEventList   = "gatherly:events:list:*"
)

type Service interface {
	SetCacheService(cacheService cache.Service, ttl time.Duration)
	CreateEvent(adminID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	UpdateEvent(id uuid.UUID, adminID uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(id uuid.UUID, adminID uuid.UUID) error
	// InvalidateEvent drops cached reads for one event. Booking mutations
	// call this after committing a seat change.
	InvalidateEvent(ctx context.Context, eventID uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cacheTTL     time.Duration
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:     repo,
		cacheTTL: 5 * time.Minute,
		log:      logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service, ttl time.Duration) {
	s.cacheService = cacheService
	if ttl > 0 {
		s.cacheTTL = ttl
	}
}

func (s *service) CreateEvent(adminID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	if req.EventDate.Before(time.Now()) {
		return nil, apperrors.New(apperrors.KindValidation, "event date must be in the future")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.New(apperrors.KindValidation, "event title cannot be empty")
	}

	existing, err := s.repo.GetByTitleAndDate(title, req.EventDate)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to check existing event", err)
	}
	if existing != nil {
		return nil, apperrors.Newf(apperrors.KindConflict,
			"an event titled %q already exists on that date", title)
	}

	event := &Event{
		Title:          title,
		Description:    strings.TrimSpace(req.Description),
		Location:       strings.TrimSpace(req.Location),
		EventDate:      req.EventDate,
		ImageURL:       req.ImageURL,
		Capacity:       req.Capacity,
		AvailableSeats: req.Capacity,
		Price:          req.Price,
		IsActive:       true,
		CreatedBy:      adminID,
	}

	if req.CategoryID != "" {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindValidation, "invalid category id", err)
		}
		event.CategoryID = &categoryID
	}

	if err := s.repo.Create(event); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create event", err)
	}

	s.log.LogEventCreated(context.Background(), event.ID.String(), adminID.String())
	s.invalidateListCache(context.Background())

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	key := cacheKeyEventDetail + id.String()

	if s.cacheService != nil {
		var cached EventResponse
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.GetActiveByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "event not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get event", err)
	}

	resp := event.ToResponse()

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, key, resp, s.cacheTTL); err != nil {
			s.log.Warn("event cache write failed", "event_id", id.String(), "error", err)
		}
	}

	return &resp, nil
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	key := s.listCacheKey(query)

	if s.cacheService != nil {
		var cached PaginatedEvents
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	events, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list events", err)
	}

	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = event.ToResponse()
	}

	result := &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}

	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, key, result, s.cacheTTL); err != nil {
			s.log.Warn("event list cache write failed", "error", err)
		}
	}

	return result, nil
}

func (s *service) UpdateEvent(id uuid.UUID, adminID uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "event not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get event", err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.New(apperrors.KindValidation, "event title cannot be empty")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Location != nil {
		location := strings.TrimSpace(*req.Location)
		if location == "" {
			return nil, apperrors.New(apperrors.KindValidation, "event location cannot be empty")
		}
		updates["location"] = location
	}
	if req.EventDate != nil {
		if req.EventDate.Before(time.Now()) {
			return nil, apperrors.New(apperrors.KindValidation, "event date must be in the future")
		}
		updates["event_date"] = *req.EventDate
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.KindValidation, "invalid category id", err)
		}
		updates["category_id"] = categoryID
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	// Title or date edits must not collide with another event
	if req.Title != nil || req.EventDate != nil {
		title := current.Title
		eventDate := current.EventDate
		if req.Title != nil {
			title = strings.TrimSpace(*req.Title)
		}
		if req.EventDate != nil {
			eventDate = *req.EventDate
		}
		existing, err := s.repo.GetByTitleAndDate(title, eventDate)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.KindInternal, "failed to check existing event", err)
		}
		if existing != nil && existing.ID != current.ID {
			return nil, apperrors.Newf(apperrors.KindConflict,
				"an event titled %q already exists on that date", title)
		}
	}

	if req.Capacity != nil && *req.Capacity != current.Capacity {
		if err := s.repo.Resize(id, *req.Capacity, adminID); err != nil {
			switch {
			case errors.Is(err, ErrCapacityBelowSold):
				return nil, apperrors.Newf(apperrors.KindValidation,
					"capacity %d is below the %d seats already booked",
					*req.Capacity, current.Capacity-current.AvailableSeats)
			case errors.Is(err, gorm.ErrRecordNotFound):
				return nil, apperrors.New(apperrors.KindNotFound, "event not found")
			default:
				return nil, apperrors.Wrap(apperrors.KindInternal, "failed to resize event", err)
			}
		}
	}

	updates["updated_by"] = adminID

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to update event", err)
	}

	if err := s.InvalidateEvent(context.Background(), id); err != nil {
		s.log.Warn("event cache invalidation failed", "event_id", id.String(), "error", err)
	}

	resp := updated.ToResponse()
	return &resp, nil
}

func (s *service) DeleteEvent(id uuid.UUID, adminID uuid.UUID) error {
	if err := s.repo.Deactivate(id, adminID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.KindNotFound, "event not found")
		}
		return apperrors.Wrap(apperrors.KindInternal, "failed to delete event", err)
	}

	if err := s.InvalidateEvent(context.Background(), id); err != nil {
		s.log.Warn("event cache invalidation failed", "event_id", id.String(), "error", err)
	}

	return nil
}

func (s *service) InvalidateEvent(ctx context.Context, eventID uuid.UUID) error {
	if s.cacheService == nil {
		return nil
	}

	if err := s.cacheService.Delete(ctx, cacheKeyEventDetail+eventID.String()); err != nil {
		return err
	}
	return s.cacheService.DeletePattern(ctx, patternEventList)
}

func (s *service) invalidateListCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, patternEventList); err != nil {
		s.log.Warn("event list cache invalidation failed", "error", err)
	}
}

func (s *service) listCacheKey(query EventListQuery) string {
	return fmt.Sprintf("%sp%d:l%d:s%s:loc%s:c%s:f%s:t%s",
		cacheKeyEventList,
		query.Page, query.Limit,
		strings.ToLower(query.Search),
		strings.ToLower(query.Location),
		query.CategoryID,
		query.DateFrom, query.DateTo)
}
