package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cellstack/cellstackgo/internal/models"
)

// WarehouseStore persists warehouses and resolves the warehouse reference
// the allocation engine starts from.
type WarehouseStore struct {
	db *gorm.DB
}

func NewWarehouseStore(db *gorm.DB) *WarehouseStore {
	return &WarehouseStore{db: db}
}

// CreateWarehouseInput carries the fields of a new warehouse.
type CreateWarehouseInput struct {
	CompanyName string
	Name        string
	Street      string
	City        string
	Region      string
	Country     string
}

func (s *WarehouseStore) Create(ctx context.Context, in CreateWarehouseInput) (*models.Warehouse, error) {
	wh := &models.Warehouse{
		ID:          uuid.NewString(),
		CompanyName: in.CompanyName,
		Name:        in.Name,
		Street:      in.Street,
		City:        in.City,
		Region:      in.Region,
		Country:     in.Country,
		Gates:       []byte("[]"),
	}
	if err := s.db.WithContext(ctx).Create(wh).Error; err != nil {
		return nil, fmt.Errorf("creating warehouse: %w", err)
	}
	return wh, nil
}

func (s *WarehouseStore) GetByID(ctx context.Context, id string) (*models.Warehouse, error) {
	var wh models.Warehouse
	if err := s.db.WithContext(ctx).First(&wh, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("loading warehouse: %w", err)
	}
	return &wh, nil
}

// ByRef resolves a warehouse by its company and warehouse name, the
// reference external callers use.
func (s *WarehouseStore) ByRef(ctx context.Context, companyName, warehouseName string) (*models.Warehouse, error) {
	var wh models.Warehouse
	err := s.db.WithContext(ctx).
		Where("company_name = ? AND name = ?", companyName, warehouseName).
		First(&wh).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("resolving warehouse reference: %w", err)
	}
	return &wh, nil
}

func (s *WarehouseStore) ListByCompany(ctx context.Context, companyName string) ([]models.Warehouse, error) {
	var warehouses []models.Warehouse
	if err := s.db.WithContext(ctx).Where("company_name = ?", companyName).Find(&warehouses).Error; err != nil {
		return nil, fmt.Errorf("listing warehouses: %w", err)
	}
	return warehouses, nil
}

func (s *WarehouseStore) Update(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	res := s.db.WithContext(ctx).Model(&models.Warehouse{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("updating warehouse: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWarehouseNotFound
	}
	return nil
}

func (s *WarehouseStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Warehouse{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting warehouse: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWarehouseNotFound
	}
	return nil
}

// AddGate appends a gate to the warehouse gate list.
func (s *WarehouseStore) AddGate(ctx context.Context, id string, gate models.Gate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wh models.Warehouse
		if err := tx.First(&wh, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWarehouseNotFound
			}
			return fmt.Errorf("loading warehouse: %w", err)
		}
		gates, err := decodeGates(wh.Gates)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(append(gates, gate))
		if err != nil {
			return fmt.Errorf("encoding gates: %w", err)
		}
		return tx.Model(&wh).Update("gates", raw).Error
	})
}

// RemoveGate removes a gate by name. Removing a gate that does not exist is
// a no-op, matching the tolerant behavior of the original endpoint.
func (s *WarehouseStore) RemoveGate(ctx context.Context, id, gateName string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wh models.Warehouse
		if err := tx.First(&wh, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWarehouseNotFound
			}
			return fmt.Errorf("loading warehouse: %w", err)
		}
		gates, err := decodeGates(wh.Gates)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(withoutGate(gates, gateName))
		if err != nil {
			return fmt.Errorf("encoding gates: %w", err)
		}
		return tx.Model(&wh).Update("gates", raw).Error
	})
}

func decodeGates(raw []byte) ([]models.Gate, error) {
	gates := []models.Gate{}
	if len(raw) == 0 {
		return gates, nil
	}
	if err := json.Unmarshal(raw, &gates); err != nil {
		return nil, fmt.Errorf("decoding gates: %w", err)
	}
	return gates, nil
}

func withoutGate(gates []models.Gate, name string) []models.Gate {
	kept := make([]models.Gate, 0, len(gates))
	for _, g := range gates {
		if g.Name != name {
			kept = append(kept, g)
		}
	}
	return kept
}
