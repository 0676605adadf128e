package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cellstack/cellstackgo/internal/models"
)

// CellStore persists cells and applies capacity reservations. Cells are
// the only rows mutated by concurrent allocation traffic, so Reserve is
// the one place that needs stronger-than-read-then-write semantics.
type CellStore struct {
	db *gorm.DB
}

func NewCellStore(db *gorm.DB) *CellStore {
	return &CellStore{db: db}
}

type CreateCellInput struct {
	FloorID        string
	Name           string
	Quantity       int
	Length         float64
	Width          float64
	Height         float64
	WeightCapacity float64
	Price          decimal.Decimal
	Status         string
}

func (s *CellStore) Create(ctx context.Context, in CreateCellInput) ([]models.Cell, error) {
	var floor models.Floor
	if err := s.db.WithContext(ctx).First(&floor, "id = ?", in.FloorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFloorNotFound
		}
		return nil, fmt.Errorf("looking up floor: %w", err)
	}
	cells, err := buildCellBatch(in, &floor)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&cells).Error; err != nil {
		return nil, fmt.Errorf("creating cells: %w", err)
	}
	return cells, nil
}

func (s *CellStore) GetByID(ctx context.Context, id string) (*models.Cell, error) {
	var cell models.Cell
	if err := s.db.WithContext(ctx).First(&cell, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCellNotFound
		}
		return nil, fmt.Errorf("loading cell: %w", err)
	}
	return &cell, nil
}

func (s *CellStore) ListByFloor(ctx context.Context, floorID string) ([]models.Cell, error) {
	var cells []models.Cell
	if err := s.db.WithContext(ctx).Where("floor_id = ?", floorID).Find(&cells).Error; err != nil {
		return nil, fmt.Errorf("listing cells: %w", err)
	}
	return cells, nil
}

func (s *CellStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	res := s.db.WithContext(ctx).Model(&models.Cell{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating cell: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCellNotFound
	}
	return nil
}

func (s *CellStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Cell{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting cell: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCellNotFound
	}
	return nil
}

// Reserve applies a reservation as a decrement-if-sufficient operation:
// the row is locked, capacity is re-checked under the lock, and the
// counters, status and product manifest are written together. Losing the
// re-check returns ErrCapacityExhausted so the caller can move on to the
// next candidate cell instead of failing the whole allocation.
func (s *CellStore) Reserve(ctx context.Context, cellID string, r models.Reservation) (*models.Cell, error) {
	var reserved models.Cell
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cell models.Cell
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cell, "id = ?", cellID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCellNotFound
			}
			return fmt.Errorf("locking cell: %w", err)
		}
		if cell.Volume < r.Volume || cell.WeightCapacity < r.Weight {
			return ErrCapacityExhausted
		}

		// Fill percentage is defined against the volume before the decrement.
		r.Product.FillPercent = r.Volume / cell.Volume * 100
		if r.Product.PlacedAt.IsZero() {
			r.Product.PlacedAt = time.Now().UTC()
		}

		manifest := []models.ProductRef{}
		if len(cell.Products) > 0 {
			if err := json.Unmarshal(cell.Products, &manifest); err != nil {
				return fmt.Errorf("decoding cell manifest: %w", err)
			}
		}
		raw, err := json.Marshal(append(manifest, r.Product))
		if err != nil {
			return fmt.Errorf("encoding cell manifest: %w", err)
		}

		cell.Volume -= r.Volume
		cell.WeightCapacity -= r.Weight
		cell.Status = models.CellStatusInWaiting
		cell.Products = raw
		if err := tx.Save(&cell).Error; err != nil {
			return fmt.Errorf("writing reservation: %w", err)
		}
		reserved = cell
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reserved, nil
}
