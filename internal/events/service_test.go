package events

import (
	"context"
	"testing"
	"time"

	"gatherly/internal/shared/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(event *Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockRepository) GetByID(id uuid.UUID) (*Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Event), args.Error(1)
}

func (m *MockRepository) GetActiveByID(id uuid.UUID) (*Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Event), args.Error(1)
}

func (m *MockRepository) GetByTitleAndDate(title string, eventDate time.Time) (*Event, error) {
	args := m.Called(title, eventDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Event), args.Error(1)
}

func (m *MockRepository) Update(id uuid.UUID, updates map[string]interface{}) (*Event, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Event), args.Error(1)
}

func (m *MockRepository) Resize(id uuid.UUID, newCapacity int, adminID uuid.UUID) error {
	args := m.Called(id, newCapacity, adminID)
	return args.Error(0)
}

func (m *MockRepository) Deactivate(id uuid.UUID, adminID uuid.UUID) error {
	args := m.Called(id, adminID)
	return args.Error(0)
}

func (m *MockRepository) GetAll(query EventListQuery) ([]Event, int64, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Event), args.Get(1).(int64), args.Error(2)
}

func TestCreateEventSeedsAvailableSeatsFromCapacity(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	adminID := uuid.New()
	eventDate := time.Now().Add(48 * time.Hour)

	repo.On("GetByTitleAndDate", "Jazz Night", eventDate).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.MatchedBy(func(e *Event) bool {
		return e.Capacity == 250 && e.AvailableSeats == 250 && e.IsActive
	})).Return(nil)

	resp, err := svc.CreateEvent(adminID, CreateEventRequest{
		Title:     "Jazz Night",
		Location:  "Blue Note",
		EventDate: eventDate,
		Capacity:  250,
		Price:     75,
	})

	assert.NoError(t, err)
	assert.Equal(t, 250, resp.AvailableSeats)
	assert.Equal(t, 0, resp.BookedSeats)
	repo.AssertExpectations(t)
}

func TestCreateEventRejectsPastDate(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.CreateEvent(uuid.New(), CreateEventRequest{
		Title:     "Retro Show",
		Location:  "Old Town Hall",
		EventDate: time.Now().Add(-time.Hour),
		Capacity:  50,
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateEventDuplicateTitleAndDate(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	eventDate := time.Now().Add(48 * time.Hour)

	repo.On("GetByTitleAndDate", "Jazz Night", eventDate).
		Return(&Event{ID: uuid.New(), Title: "Jazz Night"}, nil)

	_, err := svc.CreateEvent(uuid.New(), CreateEventRequest{
		Title:     "Jazz Night",
		Location:  "Blue Note",
		EventDate: eventDate,
		Capacity:  100,
	})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestGetEventByIDNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	id := uuid.New()

	repo.On("GetActiveByID", id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetEventByID(context.Background(), id)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdateEventCapacityBelowSoldSeats(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	id := uuid.New()
	adminID := uuid.New()
	newCapacity := 5

	repo.On("GetByID", id).Return(&Event{
		ID: id, Title: "Jazz Night", Capacity: 100, AvailableSeats: 92,
	}, nil)
	repo.On("Resize", id, newCapacity, adminID).Return(ErrCapacityBelowSold)

	_, err := svc.UpdateEvent(id, adminID, UpdateEventRequest{Capacity: &newCapacity})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateEventCapacityResizes(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	id := uuid.New()
	adminID := uuid.New()
	newCapacity := 150

	repo.On("GetByID", id).Return(&Event{
		ID: id, Title: "Jazz Night", Capacity: 100, AvailableSeats: 92,
	}, nil)
	repo.On("Resize", id, newCapacity, adminID).Return(nil)
	repo.On("Update", id, mock.Anything).Return(&Event{
		ID: id, Title: "Jazz Night", Capacity: 150, AvailableSeats: 142,
	}, nil)

	resp, err := svc.UpdateEvent(id, adminID, UpdateEventRequest{Capacity: &newCapacity})

	assert.NoError(t, err)
	assert.Equal(t, 150, resp.Capacity)
	assert.Equal(t, 8, resp.BookedSeats)
	repo.AssertExpectations(t)
}

func TestDeleteEventIsSoftDelete(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	id := uuid.New()
	adminID := uuid.New()

	repo.On("Deactivate", id, adminID).Return(nil)

	err := svc.DeleteEvent(id, adminID)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
