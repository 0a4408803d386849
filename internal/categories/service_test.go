package categories

import (
	"testing"

	"gatherly/internal/shared/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(category *Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockRepository) GetByID(id uuid.UUID) (*Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) GetByName(name string) (*Category, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Category), args.Error(1)
}

func (m *MockRepository) GetAll(query CategoryListQuery) ([]Category, int64, error) {
	args := m.Called(query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Category), args.Get(1).(int64), args.Error(2)
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetByName", "Music").Return(&Category{ID: uuid.New(), Name: "Music"}, nil)

	_, err := svc.CreateCategory(uuid.New(), CreateCategoryRequest{Name: "Music"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateCategoryTrimsName(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	adminID := uuid.New()

	repo.On("GetByName", "Theatre").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.MatchedBy(func(c *Category) bool {
		return c.Name == "Theatre" && c.CreatedBy == adminID
	})).Return(nil)

	resp, err := svc.CreateCategory(adminID, CreateCategoryRequest{Name: "  Theatre  "})

	assert.NoError(t, err)
	assert.Equal(t, "Theatre", resp.Name)
	repo.AssertExpectations(t)
}

func TestGetCategoryByIDNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	id := uuid.New()

	repo.On("GetByID", id).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetCategoryByID(id)

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
