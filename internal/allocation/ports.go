package allocation

import (
	"context"

	"github.com/cellstack/cellstackgo/internal/models"
)

// The engine reads the hierarchy through one narrow interface per entity
// kind so that any store with the right shape can back it, including the
// in-memory fakes the tests use.

type WarehouseSource interface {
	ByRef(ctx context.Context, companyName, warehouseName string) (*models.Warehouse, error)
}

type CategorySource interface {
	ListByWarehouse(ctx context.Context, warehouseID string) ([]models.StorageCategory, error)
}

type ZoneSource interface {
	ListByCategory(ctx context.Context, categoryID string) ([]models.Zone, error)
}

type ConditionSource interface {
	ListByZone(ctx context.Context, zoneID string) ([]models.StorageCondition, error)
}

type RackSource interface {
	ListByZone(ctx context.Context, zoneID string) ([]models.Rack, error)
}

type FloorSource interface {
	ListByRack(ctx context.Context, rackID string) ([]models.Floor, error)
}

// CellSource lists candidate cells and applies reservations. Reserve must
// be atomic with respect to concurrent reservations of the same cell and
// must return storage.ErrCapacityExhausted when the capacity check fails
// at write time.
type CellSource interface {
	ListByFloor(ctx context.Context, floorID string) ([]models.Cell, error)
	Reserve(ctx context.Context, cellID string, r models.Reservation) (*models.Cell, error)
}

// BoxSource backs the box packer.
type BoxSource interface {
	ListByType(ctx context.Context, boxTypeID string) ([]models.Box, error)
	PlaceProduct(ctx context.Context, boxID string, product models.ProductRef) (*models.Box, error)
}

// Sources bundles everything the engine needs.
type Sources struct {
	Warehouses WarehouseSource
	Categories CategorySource
	Zones      ZoneSource
	Conditions ConditionSource
	Racks      RackSource
	Floors     FloorSource
	Cells      CellSource
	Boxes      BoxSource
}
