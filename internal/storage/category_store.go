package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cellstack/cellstackgo/internal/models"
)

// CategoryStore persists preservation-duration tiers.
type CategoryStore struct {
	db *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

type CreateCategoryInput struct {
	WarehouseID   string
	Name          string
	TimeThreshold int
	Price         decimal.Decimal
}

func (s *CategoryStore) Create(ctx context.Context, in CreateCategoryInput) (*models.StorageCategory, error) {
	var wh models.Warehouse
	if err := s.db.WithContext(ctx).First(&wh, "id = ?", in.WarehouseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("looking up warehouse: %w", err)
	}
	cat := &models.StorageCategory{
		ID:            uuid.NewString(),
		WarehouseID:   wh.ID,
		Name:          in.Name,
		TimeThreshold: in.TimeThreshold,
		Price:         in.Price,
	}
	if err := s.db.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return cat, nil
}

func (s *CategoryStore) GetByID(ctx context.Context, id string) (*models.StorageCategory, error) {
	var cat models.StorageCategory
	if err := s.db.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("loading category: %w", err)
	}
	return &cat, nil
}

// ListByWarehouse returns the warehouse's categories in insertion order,
// which is the order the allocation engine scans them in.
func (s *CategoryStore) ListByWarehouse(ctx context.Context, warehouseID string) ([]models.StorageCategory, error) {
	var categories []models.StorageCategory
	if err := s.db.WithContext(ctx).Where("warehouse_id = ?", warehouseID).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	res := s.db.WithContext(ctx).Model(&models.StorageCategory{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *CategoryStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.StorageCategory{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
