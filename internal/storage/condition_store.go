package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cellstack/cellstackgo/internal/models"
)

// ConditionStore persists zone conditions. Creating a condition is a
// two-entity write: the condition row is inserted and the owning zone's
// price is raised by the condition's price. Both happen in one transaction
// so a failed insert never leaves a half-applied price bump.
type ConditionStore struct {
	db *gorm.DB
}

func NewConditionStore(db *gorm.DB) *ConditionStore {
	return &ConditionStore{db: db}
}

type CreateConditionInput struct {
	ZoneID      string
	Name        string
	WindowStart int
	WindowEnd   int
	Active      bool
	Price       decimal.Decimal
}

func (s *ConditionStore) Create(ctx context.Context, in CreateConditionInput) (*models.StorageCondition, error) {
	cond := &models.StorageCondition{
		ID:          uuid.NewString(),
		ZoneID:      in.ZoneID,
		Name:        in.Name,
		WindowStart: in.WindowStart,
		WindowEnd:   in.WindowEnd,
		Active:      in.Active,
		Price:       in.Price,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zone models.Zone
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&zone, "id = ?", in.ZoneID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrZoneNotFound
			}
			return fmt.Errorf("looking up zone: %w", err)
		}
		if err := tx.Create(cond).Error; err != nil {
			return fmt.Errorf("creating condition: %w", err)
		}
		newPrice := raisedZonePrice(zone.Price, in.Price)
		if err := tx.Model(&models.Zone{}).Where("id = ?", zone.ID).Update("price", newPrice).Error; err != nil {
			return fmt.Errorf("raising zone price: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cond, nil
}

func (s *ConditionStore) GetByID(ctx context.Context, id string) (*models.StorageCondition, error) {
	var cond models.StorageCondition
	if err := s.db.WithContext(ctx).First(&cond, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConditionNotFound
		}
		return nil, fmt.Errorf("loading condition: %w", err)
	}
	return &cond, nil
}

func (s *ConditionStore) ListByZone(ctx context.Context, zoneID string) ([]models.StorageCondition, error) {
	var conditions []models.StorageCondition
	if err := s.db.WithContext(ctx).Where("zone_id = ?", zoneID).Find(&conditions).Error; err != nil {
		return nil, fmt.Errorf("listing conditions: %w", err)
	}
	return conditions, nil
}

func (s *ConditionStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	res := s.db.WithContext(ctx).Model(&models.StorageCondition{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating condition: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConditionNotFound
	}
	return nil
}

func (s *ConditionStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.StorageCondition{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting condition: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConditionNotFound
	}
	return nil
}
