package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cellstack/cellstackgo/internal/models"
)

// RackStore persists racks, the first batch-created kind.
type RackStore struct {
	db *gorm.DB
}

func NewRackStore(db *gorm.DB) *RackStore {
	return &RackStore{db: db}
}

type CreateRackInput struct {
	ZoneID   string
	Name     string
	Quantity int
	Price    decimal.Decimal
	Length   float64
	Width    float64
	Height   float64
}

// Create inserts Quantity independent rack rows and returns them in the
// order they were persisted.
func (s *RackStore) Create(ctx context.Context, in CreateRackInput) ([]models.Rack, error) {
	var zone models.Zone
	if err := s.db.WithContext(ctx).First(&zone, "id = ?", in.ZoneID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, fmt.Errorf("looking up zone: %w", err)
	}
	racks := buildRackBatch(in, &zone)
	if err := s.db.WithContext(ctx).Create(&racks).Error; err != nil {
		return nil, fmt.Errorf("creating racks: %w", err)
	}
	return racks, nil
}

func (s *RackStore) GetByID(ctx context.Context, id string) (*models.Rack, error) {
	var rack models.Rack
	if err := s.db.WithContext(ctx).First(&rack, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRackNotFound
		}
		return nil, fmt.Errorf("loading rack: %w", err)
	}
	return &rack, nil
}

func (s *RackStore) ListByZone(ctx context.Context, zoneID string) ([]models.Rack, error) {
	var racks []models.Rack
	if err := s.db.WithContext(ctx).Where("zone_id = ?", zoneID).Find(&racks).Error; err != nil {
		return nil, fmt.Errorf("listing racks: %w", err)
	}
	return racks, nil
}

func (s *RackStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	res := s.db.WithContext(ctx).Model(&models.Rack{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating rack: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRackNotFound
	}
	return nil
}

func (s *RackStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Rack{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting rack: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRackNotFound
	}
	return nil
}
