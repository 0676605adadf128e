package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cellstack/cellstackgo/internal/models"
)

// ZoneStore persists zones. Zone creation is where the first price cascade
// happens: the stored price is the caller's base plus the parent category's
// price at that moment.
type ZoneStore struct {
	db *gorm.DB
}

func NewZoneStore(db *gorm.DB) *ZoneStore {
	return &ZoneStore{db: db}
}

type CreateZoneInput struct {
	CategoryID string
	Name       string
	Price      decimal.Decimal
}

func (s *ZoneStore) Create(ctx context.Context, in CreateZoneInput) (*models.Zone, error) {
	var cat models.StorageCategory
	if err := s.db.WithContext(ctx).First(&cat, "id = ?", in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("looking up category: %w", err)
	}
	zone := buildZone(in, &cat)
	if err := s.db.WithContext(ctx).Create(zone).Error; err != nil {
		return nil, fmt.Errorf("creating zone: %w", err)
	}
	return zone, nil
}

func (s *ZoneStore) GetByID(ctx context.Context, id string) (*models.Zone, error) {
	var zone models.Zone
	if err := s.db.WithContext(ctx).First(&zone, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("loading zone: %w", err)
	}
	return &zone, nil
}

func (s *ZoneStore) ListByCategory(ctx context.Context, categoryID string) ([]models.Zone, error) {
	var zones []models.Zone
	if err := s.db.WithContext(ctx).Where("category_id = ?", categoryID).Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("listing zones: %w", err)
	}
	return zones, nil
}

func (s *ZoneStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	res := s.db.WithContext(ctx).Model(&models.Zone{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating zone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrZoneNotFound
	}
	return nil
}

func (s *ZoneStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Zone{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting zone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrZoneNotFound
	}
	return nil
}
