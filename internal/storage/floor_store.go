package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cellstack/cellstackgo/internal/models"
)

// FloorStore persists rack floors.
type FloorStore struct {
	db *gorm.DB
}

func NewFloorStore(db *gorm.DB) *FloorStore {
	return &FloorStore{db: db}
}

type CreateFloorInput struct {
	RackID            string
	Name              string
	Quantity          int
	Length            float64
	Width             float64
	Height            float64
	WeightCapacity    float64
	MaxPrice          decimal.Decimal
	PriceDecayPercent float64
}

func (s *FloorStore) Create(ctx context.Context, in CreateFloorInput) ([]models.Floor, error) {
	var rack models.Rack
	if err := s.db.WithContext(ctx).First(&rack, "id = ?", in.RackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRackNotFound
		}
		return nil, fmt.Errorf("looking up rack: %w", err)
	}
	floors, err := buildFloorBatch(in, &rack)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&floors).Error; err != nil {
		return nil, fmt.Errorf("creating floors: %w", err)
	}
	return floors, nil
}

func (s *FloorStore) GetByID(ctx context.Context, id string) (*models.Floor, error) {
	var floor models.Floor
	if err := s.db.WithContext(ctx).First(&floor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFloorNotFound
		}
		return nil, fmt.Errorf("loading floor: %w", err)
	}
	return &floor, nil
}

// ListByRack returns floors most recently created first. The other kinds
// list in insertion order; floors are the one deliberate exception and the
// allocation engine depends on it.
func (s *FloorStore) ListByRack(ctx context.Context, rackID string) ([]models.Floor, error) {
	var floors []models.Floor
	err := s.db.WithContext(ctx).
		Where("rack_id = ?", rackID).
		Order("created_at DESC").
		Find(&floors).Error
	if err != nil {
		return nil, fmt.Errorf("listing floors: %w", err)
	}
	return floors, nil
}

func (s *FloorStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	res := s.db.WithContext(ctx).Model(&models.Floor{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating floor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrFloorNotFound
	}
	return nil
}

func (s *FloorStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Floor{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting floor: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrFloorNotFound
	}
	return nil
}
