package store

import (
	"context"
	"errors"
	"time"

	"github.com/dancosta154/leadership-profile/internal/db/models"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection in the DocumentStore contract.
func NewGormStore(db *gorm.DB) DocumentStore {
	return &gormStore{db: db}
}

func (s *gormStore) Create(ctx context.Context, doc *models.Document) error {
	if doc.UploadDate.IsZero() {
		doc.UploadDate = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(doc).Error
}

func (s *gormStore) Get(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	if err := s.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (s *gormStore) List(ctx context.Context, category string) ([]models.Document, error) {
	query := s.db.WithContext(ctx).
		Order("is_featured DESC").
		Order("order_index DESC").
		Order("upload_date DESC")

	if category != "" && category != "all" {
		query = query.Where("category = ?", category)
	}

	var docs []models.Document
	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *gormStore) ListAdmin(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.WithContext(ctx).
		Order("upload_date DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *gormStore) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.db.WithContext(ctx).
		Model(&models.Document{}).
		Distinct("category").
		Pluck("category", &categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *gormStore) Update(ctx context.Context, id uint, patch DocumentPatch) (*models.Document, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":       patch.Title,
		"description": patch.Description,
		"category":    patch.Category,
		"is_featured": patch.IsFeatured,
	}
	if err := s.db.WithContext(ctx).Model(doc).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *gormStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Document{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
