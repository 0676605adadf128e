package storage

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cellstack/cellstackgo/internal/models"
)

// The build*Batch functions expand one creation request into the rows that
// get persisted. They hold all of the replication, defaulting, price
// cascade and bound checking, and are kept free of database access so the
// batch semantics can be tested directly.

func normalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// buildZone folds the owning category's price into the zone at creation
// time. The cascade is one-time: later category price edits do not
// propagate.
func buildZone(in CreateZoneInput, cat *models.StorageCategory) *models.Zone {
	return &models.Zone{
		ID:         uuid.NewString(),
		CategoryID: cat.ID,
		Name:       in.Name,
		Price:      in.Price.Add(cat.Price),
	}
}

// raisedZonePrice is the zone price after a condition with the given price
// is attached: the old price plus exactly the condition's price.
func raisedZonePrice(zonePrice, conditionPrice decimal.Decimal) decimal.Decimal {
	return zonePrice.Add(conditionPrice)
}

// buildRackBatch replicates the request quantity times. Every copy gets the
// request price plus the owning zone's price; only the ids differ.
func buildRackBatch(in CreateRackInput, zone *models.Zone) []models.Rack {
	price := in.Price.Add(zone.Price)
	racks := make([]models.Rack, 0, normalizeQuantity(in.Quantity))
	for i := 0; i < normalizeQuantity(in.Quantity); i++ {
		racks = append(racks, models.Rack{
			ID:     uuid.NewString(),
			ZoneID: zone.ID,
			Name:   in.Name,
			Length: in.Length,
			Width:  in.Width,
			Height: in.Height,
			Price:  price,
		})
	}
	return racks
}

// buildFloorBatch applies the rack's dimensions where the request supplies
// zero, rejects dimensions larger than the rack's, and decays the max price
// geometrically across the batch: unit i gets maxPrice0*(1-decay/100)^i.
func buildFloorBatch(in CreateFloorInput, rack *models.Rack) ([]models.Floor, error) {
	if in.Length != 0 && in.Length > rack.Length {
		return nil, ErrDimensionExceeded
	}
	if in.Width != 0 && in.Width > rack.Width {
		return nil, ErrDimensionExceeded
	}
	length := in.Length
	if length == 0 {
		length = rack.Length
	}
	width := in.Width
	if width == 0 {
		width = rack.Width
	}
	height := in.Height
	if height == 0 {
		height = 1
	}
	weightCapacity := in.WeightCapacity
	if weightCapacity == 0 {
		weightCapacity = 100
	}

	maxPrice := in.MaxPrice.Add(rack.Price)
	ratio := decimal.NewFromFloat(1 - in.PriceDecayPercent/100)

	floors := make([]models.Floor, 0, normalizeQuantity(in.Quantity))
	for i := 0; i < normalizeQuantity(in.Quantity); i++ {
		floors = append(floors, models.Floor{
			ID:                uuid.NewString(),
			RackID:            rack.ID,
			Name:              in.Name,
			Length:            length,
			Width:             width,
			Height:            height,
			WeightCapacity:    weightCapacity,
			MaxPrice:          maxPrice,
			PriceDecayPercent: in.PriceDecayPercent,
		})
		maxPrice = maxPrice.Mul(ratio)
	}
	return floors, nil
}

// buildCellBatch mirrors buildFloorBatch against the parent floor, but the
// batch copies are identical: there is no decay across cells. Height and
// weight capacity get their defaults here rather than from the column
// defaults so that volume is derived from the effective dimensions.
func buildCellBatch(in CreateCellInput, floor *models.Floor) ([]models.Cell, error) {
	if in.Length != 0 && in.Length > floor.Length {
		return nil, ErrDimensionExceeded
	}
	if in.Width != 0 && in.Width > floor.Width {
		return nil, ErrDimensionExceeded
	}
	length := in.Length
	if length == 0 {
		length = floor.Length
	}
	width := in.Width
	if width == 0 {
		width = floor.Width
	}
	height := in.Height
	if height == 0 {
		height = 1
	}
	weightCapacity := in.WeightCapacity
	if weightCapacity == 0 {
		weightCapacity = 100
	}

	status := in.Status
	if status == "" {
		status = models.CellStatusActive
	}
	price := in.Price.Add(floor.MaxPrice)
	volume := length * width * height

	cells := make([]models.Cell, 0, normalizeQuantity(in.Quantity))
	for i := 0; i < normalizeQuantity(in.Quantity); i++ {
		cells = append(cells, models.Cell{
			ID:             uuid.NewString(),
			FloorID:        floor.ID,
			Name:           in.Name,
			Length:         length,
			Width:          width,
			Height:         height,
			WeightCapacity: weightCapacity,
			Volume:         volume,
			Price:          price,
			Status:         status,
			Products:       []byte("[]"),
		})
	}
	return cells, nil
}

// buildBoxBatch snapshots the box type's dimensions, area and volume onto
// every copy. The snapshot is taken once here; later edits to the type do
// not propagate.
func buildBoxBatch(in CreateBoxInput, boxType *models.BoxType, warehouseID string) []models.Box {
	address := in.Address
	if address == "" {
		address = models.BoxAddressOutside
	}
	boxes := make([]models.Box, 0, normalizeQuantity(in.Quantity))
	for i := 0; i < normalizeQuantity(in.Quantity); i++ {
		boxes = append(boxes, models.Box{
			ID:          uuid.NewString(),
			BoxTypeID:   boxType.ID,
			WarehouseID: warehouseID,
			Weight:      in.Weight,
			Address:     address,
			Length:      boxType.Length,
			Width:       boxType.Width,
			Height:      boxType.Height,
			Area:        boxType.Area,
			Volume:      boxType.Volume,
			Status:      models.BoxStatusActive,
			Products:    []byte("[]"),
		})
	}
	return boxes
}
