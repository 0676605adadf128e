package allocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cellstack/cellstackgo/internal/models"
	"github.com/cellstack/cellstackgo/internal/storage"
)

// Errors reported by the engine itself. Store errors (warehouse not found,
// transient failures) pass through unchanged.
var (
	ErrInvalidRequest      = errors.New("volume and weight must be positive")
	ErrNoSuitableZone      = errors.New("no category and zone satisfy the storage requirements")
	ErrNoCapacityAvailable = errors.New("no cell has sufficient remaining capacity")
	ErrNoBoxFits           = errors.New("not enough fitting boxes for the requested quantity")
)

// Engine walks the storage hierarchy depth-first and reserves space in the
// first compatible unit. It holds no state of its own; every call is a
// request-scoped sequence of reads followed by one conditional write.
type Engine struct {
	src Sources
	log zerolog.Logger
}

func NewEngine(src Sources, log zerolog.Logger) *Engine {
	return &Engine{src: src, log: log}
}

// PlacementRequest describes an item that needs a cell.
type PlacementRequest struct {
	CompanyName   string   `json:"company_name"`
	WarehouseName string   `json:"warehouse_name"`
	ProductID     string   `json:"product_id"`
	ProductName   string   `json:"product_name"`
	// StoringDuration is how long the item must be preserved; it is matched
	// against category time thresholds.
	StoringDuration int      `json:"storing_duration"`
	ConditionIDs    []string `json:"condition_ids,omitempty"`
	Volume          float64  `json:"volume"`
	Weight          float64  `json:"weight"`
}

// Placement is the enriched item record returned on success: the full path
// of identifiers down to the reserved cell.
type Placement struct {
	WarehouseID string       `json:"warehouse_id"`
	CategoryID  string       `json:"category_id"`
	ZoneID      string       `json:"zone_id"`
	RackID      string       `json:"rack_id"`
	FloorID     string       `json:"floor_id"`
	CellID      string       `json:"cell_id"`
	FillPercent float64      `json:"fill_percent"`
	Cell        *models.Cell `json:"cell,omitempty"`
}

// AllocateProduct resolves the warehouse, picks the first (category, zone)
// pair matching the item's duration and conditions, then scans
// rack -> floor -> cell depth-first and reserves the first cell with
// enough volume and weight capacity left.
func (e *Engine) AllocateProduct(ctx context.Context, req PlacementRequest) (*Placement, error) {
	if req.Volume <= 0 || req.Weight <= 0 {
		return nil, ErrInvalidRequest
	}

	wh, err := e.src.Warehouses.ByRef(ctx, req.CompanyName, req.WarehouseName)
	if err != nil {
		return nil, err
	}

	categoryID, zoneID, err := e.findZone(ctx, wh.ID, req)
	if err != nil {
		return nil, err
	}

	placement, err := e.reserveCell(ctx, zoneID, req)
	if err != nil {
		return nil, err
	}
	placement.WarehouseID = wh.ID
	placement.CategoryID = categoryID
	placement.ZoneID = zoneID

	e.log.Info().
		Str("warehouse_id", wh.ID).
		Str("cell_id", placement.CellID).
		Float64("fill_percent", placement.FillPercent).
		Msg("product allocated")
	return placement, nil
}

// findZone scans categories in store order. A category qualifies when its
// time threshold covers the storing duration, but the scan only stops once
// a zone under it also qualifies; a qualifying category with no matching
// zone lets the walk continue into later categories.
func (e *Engine) findZone(ctx context.Context, warehouseID string, req PlacementRequest) (categoryID, zoneID string, err error) {
	categories, err := e.src.Categories.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return "", "", err
	}
	for _, cat := range categories {
		if cat.TimeThreshold < req.StoringDuration {
			continue
		}
		zones, err := e.src.Zones.ListByCategory(ctx, cat.ID)
		if err != nil {
			return "", "", err
		}
		for _, zone := range zones {
			if len(req.ConditionIDs) == 0 {
				return cat.ID, zone.ID, nil
			}
			conditions, err := e.src.Conditions.ListByZone(ctx, zone.ID)
			if err != nil {
				return "", "", err
			}
			if containsAll(conditions, req.ConditionIDs) {
				return cat.ID, zone.ID, nil
			}
		}
	}
	return "", "", ErrNoSuitableZone
}

// reserveCell walks rack -> floor -> cell depth-first. Persisted cell
// status never gates candidacy; only the capacity counters decide. A
// reservation lost to a concurrent request just moves the walk to the next
// candidate.
func (e *Engine) reserveCell(ctx context.Context, zoneID string, req PlacementRequest) (*Placement, error) {
	racks, err := e.src.Racks.ListByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	for _, rack := range racks {
		floors, err := e.src.Floors.ListByRack(ctx, rack.ID)
		if err != nil {
			return nil, err
		}
		for _, floor := range floors {
			cells, err := e.src.Cells.ListByFloor(ctx, floor.ID)
			if err != nil {
				return nil, err
			}
			for _, cell := range cells {
				if cell.Volume < req.Volume || cell.WeightCapacity < req.Weight {
					continue
				}
				reserved, err := e.src.Cells.Reserve(ctx, cell.ID, models.Reservation{
					Volume: req.Volume,
					Weight: req.Weight,
					Product: models.ProductRef{
						ProductID:       req.ProductID,
						Name:            req.ProductName,
						Volume:          req.Volume,
						Weight:          req.Weight,
						StoringDuration: req.StoringDuration,
					},
				})
				if errors.Is(err, storage.ErrCapacityExhausted) {
					e.log.Debug().Str("cell_id", cell.ID).Msg("reservation raced, trying next cell")
					continue
				}
				if err != nil {
					return nil, err
				}
				fill, err := lastFillPercent(reserved)
				if err != nil {
					return nil, err
				}
				return &Placement{
					RackID:      rack.ID,
					FloorID:     floor.ID,
					CellID:      reserved.ID,
					FillPercent: fill,
					Cell:        reserved,
				}, nil
			}
		}
	}
	return nil, ErrNoCapacityAvailable
}

// lastFillPercent reads the fill percentage Reserve wrote into the cell's
// manifest, so the reported value can never diverge from the persisted one.
func lastFillPercent(cell *models.Cell) (float64, error) {
	var manifest []models.ProductRef
	if err := json.Unmarshal(cell.Products, &manifest); err != nil {
		return 0, fmt.Errorf("decoding cell manifest: %w", err)
	}
	if len(manifest) == 0 {
		return 0, nil
	}
	return manifest[len(manifest)-1].FillPercent, nil
}

func containsAll(conditions []models.StorageCondition, required []string) bool {
	have := make(map[string]struct{}, len(conditions))
	for _, c := range conditions {
		have[c.ID] = struct{}{}
	}
	for _, id := range required {
		if _, ok := have[id]; !ok {
			return false
		}
	}
	return true
}

// BoxRequest asks for a product run to be packed into boxes of one type.
type BoxRequest struct {
	BoxTypeID   string  `json:"box_type_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	Quantity    int     `json:"quantity"`
}

// BoxPlacement reports which boxes were filled and how many units each
// took.
type BoxPlacement struct {
	BoxIDs    []string       `json:"box_ids"`
	PerBox    map[string]int `json:"per_box"`
	Remaining int            `json:"remaining"`
}

// PlaceInBoxes fills boxes of the requested type in ascending volume
// order. A box qualifies when the product's three dimensions fit inside
// it; each box takes as many stacked units as its height allows. Running
// out of boxes with units left over returns ErrNoBoxFits along with the
// partial placement.
func (e *Engine) PlaceInBoxes(ctx context.Context, req BoxRequest) (*BoxPlacement, error) {
	if req.Quantity < 1 || req.Length <= 0 || req.Width <= 0 || req.Height <= 0 {
		return nil, ErrInvalidRequest
	}
	boxes, err := e.src.Boxes.ListByType(ctx, req.BoxTypeID)
	if err != nil {
		return nil, err
	}

	placement := &BoxPlacement{PerBox: map[string]int{}, Remaining: req.Quantity}
	for _, box := range boxes {
		if placement.Remaining == 0 {
			break
		}
		if box.Status != models.BoxStatusActive {
			continue
		}
		if box.Length < req.Length || box.Width < req.Width || box.Height < req.Height {
			continue
		}
		units := int(box.Height / req.Height)
		if units > placement.Remaining {
			units = placement.Remaining
		}
		_, err := e.src.Boxes.PlaceProduct(ctx, box.ID, models.ProductRef{
			ProductID: req.ProductID,
			Name:      req.ProductName,
			Volume:    req.Length * req.Width * req.Height,
			Weight:    req.Weight,
			Quantity:  units,
		})
		if errors.Is(err, storage.ErrBoxBusy) {
			continue
		}
		if err != nil {
			return nil, err
		}
		placement.BoxIDs = append(placement.BoxIDs, box.ID)
		placement.PerBox[box.ID] = units
		placement.Remaining -= units
	}
	if placement.Remaining > 0 {
		return placement, fmt.Errorf("%w: %d units left", ErrNoBoxFits, placement.Remaining)
	}
	return placement, nil
}
