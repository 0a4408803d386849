package categories

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(category *Category) error
	GetByID(id uuid.UUID) (*Category, error)
	GetByName(name string) (*Category, error)
	GetAll(query CategoryListQuery) ([]Category, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(category *Category) error {
	return r.db.Create(category).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Category, error) {
	var category Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) GetByName(name string) (*Category, error) {
	var category Category
	if err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repository) GetAll(query CategoryListQuery) ([]Category, int64, error) {
	var categories []Category
	var totalCount int64

	db := r.db.Model(&Category{})

	if query.Search != "" {
		db = db.Where("LOWER(name) LIKE ?", strings.ToLower(query.Search)+"%")
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

	err := db.Order("name ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&categories).Error

	return categories, totalCount, err
}
