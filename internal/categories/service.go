package categories

import (
	"errors"
	"math"
	"strings"

	"gatherly/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateCategory(adminID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error)
	GetCategoryByID(id uuid.UUID) (*CategoryResponse, error)
	GetAllCategories(query CategoryListQuery) (*PaginatedCategories, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCategory(adminID uuid.UUID, req CreateCategoryRequest) (*CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.KindValidation, "category name cannot be empty")
	}

	existing, err := s.repo.GetByName(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to check existing category", err)
	}
	if existing != nil {
		return nil, apperrors.Newf(apperrors.KindConflict, "category %q already exists", name)
	}

	category := &Category{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedBy:   adminID,
	}

	if err := s.repo.Create(category); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to create category", err)
	}

	resp := category.ToResponse()
	return &resp, nil
}

func (s *service) GetCategoryByID(id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.KindNotFound, "category not found")
		}
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to get category", err)
	}

	resp := category.ToResponse()
	return &resp, nil
}

func (s *service) GetAllCategories(query CategoryListQuery) (*PaginatedCategories, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	categories, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to list categories", err)
	}

	responses := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		responses[i] = cat.ToResponse()
	}

	return &PaginatedCategories{
		Categories: responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(query.Limit))),
	}, nil
}
