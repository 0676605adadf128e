package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cellstack/cellstackgo/internal/models"
)

// BoxTypeStore persists box dimension templates.
type BoxTypeStore struct {
	db *gorm.DB
}

func NewBoxTypeStore(db *gorm.DB) *BoxTypeStore {
	return &BoxTypeStore{db: db}
}

type CreateBoxTypeInput struct {
	Name   string
	Height float64
	Length float64
	Width  float64
	Status string
}

func (s *BoxTypeStore) Create(ctx context.Context, in CreateBoxTypeInput) (*models.BoxType, error) {
	status := in.Status
	if status == "" {
		status = models.BoxStatusActive
	}
	bt := &models.BoxType{
		ID:     uuid.NewString(),
		Name:   in.Name,
		Height: in.Height,
		Length: in.Length,
		Width:  in.Width,
		Area:   in.Length * in.Width,
		Volume: in.Length * in.Width * in.Height,
		Status: status,
	}
	if err := s.db.WithContext(ctx).Create(bt).Error; err != nil {
		return nil, fmt.Errorf("creating box type: %w", err)
	}
	return bt, nil
}

func (s *BoxTypeStore) GetByID(ctx context.Context, id string) (*models.BoxType, error) {
	var bt models.BoxType
	if err := s.db.WithContext(ctx).First(&bt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoxTypeNotFound
		}
		return nil, fmt.Errorf("loading box type: %w", err)
	}
	return &bt, nil
}

// List returns box types smallest volume first, same as boxes.
func (s *BoxTypeStore) List(ctx context.Context) ([]models.BoxType, error) {
	var types []models.BoxType
	if err := s.db.WithContext(ctx).Order("volume ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("listing box types: %w", err)
	}
	return types, nil
}

func (s *BoxTypeStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	res := s.db.WithContext(ctx).Model(&models.BoxType{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating box type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBoxTypeNotFound
	}
	return nil
}

func (s *BoxTypeStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.BoxType{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting box type: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBoxTypeNotFound
	}
	return nil
}

// BoxStore persists boxes.
type BoxStore struct {
	db *gorm.DB
}

func NewBoxStore(db *gorm.DB) *BoxStore {
	return &BoxStore{db: db}
}

type CreateBoxInput struct {
	BoxTypeID   string
	WarehouseID string
	Quantity    int
	Weight      float64
	Address     string
}

func (s *BoxStore) Create(ctx context.Context, in CreateBoxInput) ([]models.Box, error) {
	var wh models.Warehouse
	if err := s.db.WithContext(ctx).First(&wh, "id = ?", in.WarehouseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("looking up warehouse: %w", err)
	}
	bt, err := (&BoxTypeStore{db: s.db}).GetByID(ctx, in.BoxTypeID)
	if err != nil {
		return nil, err
	}
	boxes := buildBoxBatch(in, bt, wh.ID)
	if err := s.db.WithContext(ctx).Create(&boxes).Error; err != nil {
		return nil, fmt.Errorf("creating boxes: %w", err)
	}
	return boxes, nil
}

func (s *BoxStore) GetByID(ctx context.Context, id string) (*models.Box, error) {
	var box models.Box
	if err := s.db.WithContext(ctx).First(&box, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoxNotFound
		}
		return nil, fmt.Errorf("loading box: %w", err)
	}
	return &box, nil
}

// ListByWarehouse returns the warehouse's boxes smallest first.
func (s *BoxStore) ListByWarehouse(ctx context.Context, warehouseID string) ([]models.Box, error) {
	var boxes []models.Box
	err := s.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("volume ASC").
		Find(&boxes).Error
	if err != nil {
		return nil, fmt.Errorf("listing boxes: %w", err)
	}
	return boxes, nil
}

// ListByType returns boxes of one type smallest first, the order the box
// packer consumes them in.
func (s *BoxStore) ListByType(ctx context.Context, boxTypeID string) ([]models.Box, error) {
	var boxes []models.Box
	err := s.db.WithContext(ctx).
		Where("box_type_id = ?", boxTypeID).
		Order("volume ASC").
		Find(&boxes).Error
	if err != nil {
		return nil, fmt.Errorf("listing boxes: %w", err)
	}
	return boxes, nil
}

func (s *BoxStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	res := s.db.WithContext(ctx).Model(&models.Box{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating box: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBoxNotFound
	}
	return nil
}

func (s *BoxStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Box{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting box: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBoxNotFound
	}
	return nil
}

// PlaceProduct records a product inside a box and marks the box occupied.
// Like CellStore.Reserve it locks the row first: a box that is no longer
// active by the time the lock is held returns ErrBoxBusy.
func (s *BoxStore) PlaceProduct(ctx context.Context, boxID string, product models.ProductRef) (*models.Box, error) {
	var placed models.Box
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var box models.Box
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&box, "id = ?", boxID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBoxNotFound
			}
			return fmt.Errorf("locking box: %w", err)
		}
		if box.Status != models.BoxStatusActive {
			return ErrBoxBusy
		}
		if product.PlacedAt.IsZero() {
			product.PlacedAt = time.Now().UTC()
		}
		manifest := []models.ProductRef{}
		if len(box.Products) > 0 {
			if err := json.Unmarshal(box.Products, &manifest); err != nil {
				return fmt.Errorf("decoding box manifest: %w", err)
			}
		}
		raw, err := json.Marshal(append(manifest, product))
		if err != nil {
			return fmt.Errorf("encoding box manifest: %w", err)
		}
		box.Products = raw
		box.Status = models.BoxStatusInBox
		if err := tx.Save(&box).Error; err != nil {
			return fmt.Errorf("writing box: %w", err)
		}
		placed = box
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &placed, nil
}

// AssignToCell moves a set of boxes into a cell. All boxes must still be
// active; a single busy box rejects the whole assignment before anything
// is written.
func (s *BoxStore) AssignToCell(ctx context.Context, boxIDs []string, cellID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cell models.Cell
		if err := tx.First(&cell, "id = ?", cellID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCellNotFound
			}
			return fmt.Errorf("looking up cell: %w", err)
		}
		for _, id := range boxIDs {
			var box models.Box
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&box, "id = ?", id).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrBoxNotFound
				}
				return fmt.Errorf("locking box: %w", err)
			}
			if box.Status != models.BoxStatusActive {
				return ErrBoxBusy
			}
		}
		return tx.Model(&models.Box{}).
			Where("id IN ?", boxIDs).
			Update("address", cell.ID).Error
	})
}
