package allocation

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cellstack/cellstackgo/internal/models"
	"github.com/cellstack/cellstackgo/internal/storage"
)

// fakeStore is an in-memory implementation of every engine source. Reserve
// and PlaceProduct are guarded by a mutex and re-check capacity under it,
// mirroring the conditional semantics of the real cell store.
type fakeStore struct {
	mu sync.Mutex

	warehouses []models.Warehouse
	categories map[string][]models.StorageCategory
	zones      map[string][]models.Zone
	conditions map[string][]models.StorageCondition
	racks      map[string][]models.Rack
	floors     map[string][]models.Floor
	cellsByFlr map[string][]string
	cells      map[string]*models.Cell
	boxesByTyp map[string][]string
	boxes      map[string]*models.Box

	reserveCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories: map[string][]models.StorageCategory{},
		zones:      map[string][]models.Zone{},
		conditions: map[string][]models.StorageCondition{},
		racks:      map[string][]models.Rack{},
		floors:     map[string][]models.Floor{},
		cellsByFlr: map[string][]string{},
		cells:      map[string]*models.Cell{},
		boxesByTyp: map[string][]string{},
		boxes:      map[string]*models.Box{},
	}
}

func (f *fakeStore) ByRef(ctx context.Context, company, name string) (*models.Warehouse, error) {
	for i := range f.warehouses {
		if f.warehouses[i].CompanyName == company && f.warehouses[i].Name == name {
			wh := f.warehouses[i]
			return &wh, nil
		}
	}
	return nil, storage.ErrWarehouseNotFound
}

func (f *fakeStore) ListByWarehouse(ctx context.Context, id string) ([]models.StorageCategory, error) {
	return f.categories[id], nil
}

func (f *fakeStore) ListByCategory(ctx context.Context, id string) ([]models.Zone, error) {
	return f.zones[id], nil
}

func (f *fakeStore) ListByZone(ctx context.Context, id string) ([]models.StorageCondition, error) {
	return f.conditions[id], nil
}

// rackSource/floorSource wrap the fake because RackSource.ListByZone and
// ConditionSource.ListByZone collide on the method name.
type rackSource struct{ f *fakeStore }

func (r rackSource) ListByZone(ctx context.Context, id string) ([]models.Rack, error) {
	return r.f.racks[id], nil
}

type floorSource struct{ f *fakeStore }

func (fl floorSource) ListByRack(ctx context.Context, id string) ([]models.Floor, error) {
	return fl.f.floors[id], nil
}

func (f *fakeStore) ListByFloor(ctx context.Context, id string) ([]models.Cell, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Cell, 0, len(f.cellsByFlr[id]))
	for _, cid := range f.cellsByFlr[id] {
		out = append(out, *f.cells[cid])
	}
	return out, nil
}

func (f *fakeStore) Reserve(ctx context.Context, cellID string, r models.Reservation) (*models.Cell, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reserveCalls++

	cell, ok := f.cells[cellID]
	if !ok {
		return nil, storage.ErrCellNotFound
	}
	if cell.Volume < r.Volume || cell.WeightCapacity < r.Weight {
		return nil, storage.ErrCapacityExhausted
	}
	r.Product.FillPercent = r.Volume / cell.Volume * 100
	manifest := []models.ProductRef{}
	if len(cell.Products) > 0 {
		if err := json.Unmarshal(cell.Products, &manifest); err != nil {
			return nil, err
		}
	}
	raw, err := json.Marshal(append(manifest, r.Product))
	if err != nil {
		return nil, err
	}
	cell.Volume -= r.Volume
	cell.WeightCapacity -= r.Weight
	cell.Status = models.CellStatusInWaiting
	cell.Products = raw
	out := *cell
	return &out, nil
}

func (f *fakeStore) ListByType(ctx context.Context, typeID string) ([]models.Box, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Box, 0, len(f.boxesByTyp[typeID]))
	for _, bid := range f.boxesByTyp[typeID] {
		out = append(out, *f.boxes[bid])
	}
	return out, nil
}

func (f *fakeStore) PlaceProduct(ctx context.Context, boxID string, product models.ProductRef) (*models.Box, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	box, ok := f.boxes[boxID]
	if !ok {
		return nil, storage.ErrBoxNotFound
	}
	if box.Status != models.BoxStatusActive {
		return nil, storage.ErrBoxBusy
	}
	box.Status = models.BoxStatusInBox
	out := *box
	return &out, nil
}

func (f *fakeStore) sources() Sources {
	return Sources{
		Warehouses: f,
		Categories: f,
		Zones:      f,
		Conditions: f,
		Racks:      rackSource{f},
		Floors:     floorSource{f},
		Cells:      f,
		Boxes:      f,
	}
}

func (f *fakeStore) addChain(cellVolume, cellWeight float64) (warehouse, category, zone, rack, floor, cell string) {
	f.warehouses = append(f.warehouses, models.Warehouse{ID: "wh-1", CompanyName: "acme", Name: "main"})
	f.categories["wh-1"] = []models.StorageCategory{{ID: "cat-1", WarehouseID: "wh-1", TimeThreshold: 10}}
	f.zones["cat-1"] = []models.Zone{{ID: "zone-1", CategoryID: "cat-1"}}
	f.racks["zone-1"] = []models.Rack{{ID: "rack-1", ZoneID: "zone-1"}}
	f.floors["rack-1"] = []models.Floor{{ID: "floor-1", RackID: "rack-1"}}
	f.addCell("floor-1", "cell-1", cellVolume, cellWeight)
	return "wh-1", "cat-1", "zone-1", "rack-1", "floor-1", "cell-1"
}

func (f *fakeStore) addCell(floorID, id string, volume, weight float64) {
	f.cellsByFlr[floorID] = append(f.cellsByFlr[floorID], id)
	f.cells[id] = &models.Cell{
		ID:             id,
		FloorID:        floorID,
		Volume:         volume,
		WeightCapacity: weight,
		Status:         models.CellStatusActive,
		Products:       []byte("[]"),
	}
}

func testEngine(f *fakeStore) *Engine {
	return NewEngine(f.sources(), zerolog.Nop())
}

func TestAllocateProductReservesFirstFit(t *testing.T) {
	f := newFakeStore()
	f.addChain(100, 50)
	eng := testEngine(f)

	got, err := eng.AllocateProduct(context.Background(), PlacementRequest{
		CompanyName:     "acme",
		WarehouseName:   "main",
		ProductID:       "prod-1",
		StoringDuration: 5,
		Volume:          30,
		Weight:          10,
	})
	if err != nil {
		t.Fatalf("AllocateProduct: %v", err)
	}

	if got.CellID != "cell-1" || got.RackID != "rack-1" || got.FloorID != "floor-1" {
		t.Errorf("placement path = %s/%s/%s, want rack-1/floor-1/cell-1", got.RackID, got.FloorID, got.CellID)
	}
	if got.CategoryID != "cat-1" || got.ZoneID != "zone-1" {
		t.Errorf("placement scope = %s/%s, want cat-1/zone-1", got.CategoryID, got.ZoneID)
	}
	if got.FillPercent != 30.0 {
		t.Errorf("fill percent = %v, want 30.0", got.FillPercent)
	}

	cell := f.cells["cell-1"]
	if cell.Volume != 70 {
		t.Errorf("cell volume = %v, want 70", cell.Volume)
	}
	if cell.WeightCapacity != 40 {
		t.Errorf("cell weight capacity = %v, want 40", cell.WeightCapacity)
	}
	if cell.Status != models.CellStatusInWaiting {
		t.Errorf("cell status = %q, want %q", cell.Status, models.CellStatusInWaiting)
	}

	var manifest []models.ProductRef
	if err := json.Unmarshal(cell.Products, &manifest); err != nil {
		t.Fatalf("decoding manifest: %v", err)
	}
	if len(manifest) != 1 || manifest[0].ProductID != "prod-1" || manifest[0].FillPercent != 30.0 {
		t.Errorf("manifest = %+v, want one prod-1 entry with fill 30.0", manifest)
	}
}

func TestAllocateProductReportsPersistedFillPercent(t *testing.T) {
	f := newFakeStore()
	_, _, _, _, floorID, _ := f.addChain(100, 50)
	// Dimensions chosen so that reconstructing the pre-reservation volume
	// from the decremented counters would drift by float round-off.
	f.addCell(floorID, "cell-frac", 0.3, 50)
	f.cells["cell-1"].Volume = 0.05
	eng := testEngine(f)

	got, err := eng.AllocateProduct(context.Background(), PlacementRequest{
		CompanyName: "acme", WarehouseName: "main",
		StoringDuration: 5, Volume: 0.1, Weight: 5,
	})
	if err != nil {
		t.Fatalf("AllocateProduct: %v", err)
	}
	if got.CellID != "cell-frac" {
		t.Fatalf("placed in %s, want cell-frac", got.CellID)
	}

	var manifest []models.ProductRef
	if err := json.Unmarshal(f.cells["cell-frac"].Products, &manifest); err != nil {
		t.Fatalf("decoding manifest: %v", err)
	}
	if len(manifest) != 1 {
		t.Fatalf("manifest has %d entries, want 1", len(manifest))
	}
	if got.FillPercent != manifest[0].FillPercent {
		t.Errorf("reported fill %v diverges from persisted fill %v",
			got.FillPercent, manifest[0].FillPercent)
	}
}

func TestAllocateProductFirstFitIsDeterministic(t *testing.T) {
	f := newFakeStore()
	_, _, _, _, floorID, _ := f.addChain(100, 50)
	f.addCell(floorID, "cell-2", 100, 50)
	eng := testEngine(f)

	req := PlacementRequest{
		CompanyName: "acme", WarehouseName: "main",
		StoringDuration: 5, Volume: 10, Weight: 5,
	}
	first, err := eng.AllocateProduct(context.Background(), req)
	if err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	second, err := eng.AllocateProduct(context.Background(), req)
	if err != nil {
		t.Fatalf("second allocation: %v", err)
	}
	if first.CellID != second.CellID {
		t.Errorf("first-fit picked %s then %s, want the same cell", first.CellID, second.CellID)
	}
}

func TestAllocateProductSkipsCategoryWithoutMatchingZone(t *testing.T) {
	f := newFakeStore()
	f.warehouses = append(f.warehouses, models.Warehouse{ID: "wh-1", CompanyName: "acme", Name: "main"})
	// Both categories cover the duration, but the first one has no zone with
	// the required condition.
	f.categories["wh-1"] = []models.StorageCategory{
		{ID: "cat-1", TimeThreshold: 10},
		{ID: "cat-2", TimeThreshold: 20},
	}
	f.zones["cat-1"] = []models.Zone{{ID: "zone-plain"}}
	f.zones["cat-2"] = []models.Zone{{ID: "zone-cold"}}
	f.conditions["zone-cold"] = []models.StorageCondition{{ID: "cond-frost"}, {ID: "cond-dry"}}
	f.racks["zone-cold"] = []models.Rack{{ID: "rack-1"}}
	f.floors["rack-1"] = []models.Floor{{ID: "floor-1"}}
	f.addCell("floor-1", "cell-1", 100, 50)
	eng := testEngine(f)

	got, err := eng.AllocateProduct(context.Background(), PlacementRequest{
		CompanyName: "acme", WarehouseName: "main",
		StoringDuration: 5,
		ConditionIDs:    []string{"cond-frost"},
		Volume:          10, Weight: 5,
	})
	if err != nil {
		t.Fatalf("AllocateProduct: %v", err)
	}
	if got.CategoryID != "cat-2" || got.ZoneID != "zone-cold" {
		t.Errorf("selected %s/%s, want cat-2/zone-cold", got.CategoryID, got.ZoneID)
	}
}

func TestAllocateProductNoSuitableZone(t *testing.T) {
	f := newFakeStore()
	_, _, zoneID, _, _, _ := f.addChain(100, 50)
	f.conditions[zoneID] = []models.StorageCondition{{ID: "cond-dry"}}
	eng := testEngine(f)

	_, err := eng.AllocateProduct(context.Background(), PlacementRequest{
		CompanyName: "acme", WarehouseName: "main",
		StoringDuration: 5,
		ConditionIDs:    []string{"cond-frost"},
		Volume:          10, Weight: 5,
	})
	if !errors.Is(err, ErrNoSuitableZone) {
		t.Fatalf("err = %v, want ErrNoSuitableZone", err)
	}
	if f.reserveCalls != 0 {
		t.Errorf("reserve was called %d times, want 0", f.reserveCalls)
	}
	if cell := f.cells["cell-1"]; cell.Volume != 100 || cell.Status != models.CellStatusActive {
		t.Errorf("cell mutated on failed zone match: %+v", cell)
	}
}

func TestAllocateProductDurationAboveAllThresholds(t *testing.T) {
	f := newFakeStore()
	f.addChain(100, 50)
	eng := testEngine(f)

	_, err := eng.AllocateProduct(context.Background(), PlacementRequest{
		CompanyName: "acme", WarehouseName: "main",
		StoringDuration: 11,
		Volume:          10, Weight: 5,
	})
	if !errors.Is(err, ErrNoSuitableZone) {
		t.Fatalf("err = %v, want ErrNoSuitableZone", err)
	}
}

func TestAllocateProductNoCapacity(t *testing.T) {
	f := newFakeStore()
	f.addChain(20, 50)
	eng := testEngine(f)

	_, err := eng.AllocateProduct(context.Background(), PlacementRequest{
		CompanyName: "acme", WarehouseName: "main",
		StoringDuration: 5, Volume: 30, Weight: 10,
	})
	if !errors.Is(err, ErrNoCapacityAvailable) {
		t.Fatalf("err = %v, want ErrNoCapacityAvailable", err)
	}
}

func TestAllocateProductSkipsUndersizedCells(t *testing.T) {
	f := newFakeStore()
	_, _, _, _, floorID, _ := f.addChain(20, 5)
	f.addCell(floorID, "cell-big", 200, 100)
	eng := testEngine(f)

	got, err := eng.AllocateProduct(context.Background(), PlacementRequest{
		CompanyName: "acme", WarehouseName: "main",
		StoringDuration: 5, Volume: 30, Weight: 10,
	})
	if err != nil {
		t.Fatalf("AllocateProduct: %v", err)
	}
	if got.CellID != "cell-big" {
		t.Errorf("placed in %s, want cell-big", got.CellID)
	}
}

func TestAllocateProductWarehouseNotFound(t *testing.T) {
	f := newFakeStore()
	eng := testEngine(f)

	_, err := eng.AllocateProduct(context.Background(), PlacementRequest{
		CompanyName: "acme", WarehouseName: "missing",
		StoringDuration: 1, Volume: 1, Weight: 1,
	})
	if !errors.Is(err, storage.ErrWarehouseNotFound) {
		t.Fatalf("err = %v, want ErrWarehouseNotFound", err)
	}
}

func TestAllocateProductInvalidRequest(t *testing.T) {
	eng := testEngine(newFakeStore())
	for _, req := range []PlacementRequest{
		{Volume: 0, Weight: 1},
		{Volume: 1, Weight: 0},
		{Volume: -3, Weight: 1},
	} {
		if _, err := eng.AllocateProduct(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("req %+v: err = %v, want ErrInvalidRequest", req, err)
		}
	}
}

func TestConcurrentAllocationsSingleWinner(t *testing.T) {
	f := newFakeStore()
	f.addChain(100, 50)
	eng := testEngine(f)

	req := PlacementRequest{
		CompanyName: "acme", WarehouseName: "main",
		StoringDuration: 5, Volume: 60, Weight: 10,
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = eng.AllocateProduct(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrNoCapacityAvailable):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("wins = %d, losses = %d, want exactly one of each", wins, losses)
	}
	if cell := f.cells["cell-1"]; cell.Volume != 40 {
		t.Errorf("cell volume = %v, want 40 after a single reservation", cell.Volume)
	}
}

func TestAllocateProductCanceledContext(t *testing.T) {
	f := newFakeStore()
	f.addChain(100, 50)
	eng := testEngine(f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := eng.AllocateProduct(ctx, PlacementRequest{
		CompanyName: "acme", WarehouseName: "main",
		StoringDuration: 5, Volume: 30, Weight: 10,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if cell := f.cells["cell-1"]; cell.Volume != 100 {
		t.Errorf("cell mutated after cancellation: volume = %v", cell.Volume)
	}
}

func (f *fakeStore) addBox(typeID, id string, length, width, height float64, status string) {
	f.boxesByTyp[typeID] = append(f.boxesByTyp[typeID], id)
	f.boxes[id] = &models.Box{
		ID: id, BoxTypeID: typeID,
		Length: length, Width: width, Height: height,
		Volume: length * width * height,
		Status: status, Products: []byte("[]"),
	}
}

func TestPlaceInBoxesFillsAscending(t *testing.T) {
	f := newFakeStore()
	f.addBox("bt-1", "box-small", 10, 10, 10, models.BoxStatusActive)
	f.addBox("bt-1", "box-tall", 10, 10, 30, models.BoxStatusActive)
	eng := testEngine(f)

	got, err := eng.PlaceInBoxes(context.Background(), BoxRequest{
		BoxTypeID: "bt-1", ProductID: "prod-1",
		Length: 5, Width: 5, Height: 10,
		Quantity: 4,
	})
	if err != nil {
		t.Fatalf("PlaceInBoxes: %v", err)
	}
	if got.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", got.Remaining)
	}
	// The small box takes one stacked unit, the tall one the other three.
	if got.PerBox["box-small"] != 1 || got.PerBox["box-tall"] != 3 {
		t.Errorf("per box = %v, want box-small:1 box-tall:3", got.PerBox)
	}
	if f.boxes["box-small"].Status != models.BoxStatusInBox {
		t.Errorf("box-small status = %q, want inbox", f.boxes["box-small"].Status)
	}
}

func TestPlaceInBoxesSkipsBusyAndUndersized(t *testing.T) {
	f := newFakeStore()
	f.addBox("bt-1", "box-busy", 10, 10, 10, models.BoxStatusInBox)
	f.addBox("bt-1", "box-narrow", 3, 3, 10, models.BoxStatusActive)
	f.addBox("bt-1", "box-ok", 10, 10, 10, models.BoxStatusActive)
	eng := testEngine(f)

	got, err := eng.PlaceInBoxes(context.Background(), BoxRequest{
		BoxTypeID: "bt-1", Length: 5, Width: 5, Height: 10, Quantity: 1,
	})
	if err != nil {
		t.Fatalf("PlaceInBoxes: %v", err)
	}
	if len(got.BoxIDs) != 1 || got.BoxIDs[0] != "box-ok" {
		t.Errorf("box ids = %v, want [box-ok]", got.BoxIDs)
	}
}

func TestPlaceInBoxesRunsOut(t *testing.T) {
	f := newFakeStore()
	f.addBox("bt-1", "box-1", 10, 10, 10, models.BoxStatusActive)
	eng := testEngine(f)

	got, err := eng.PlaceInBoxes(context.Background(), BoxRequest{
		BoxTypeID: "bt-1", Length: 5, Width: 5, Height: 10, Quantity: 3,
	})
	if !errors.Is(err, ErrNoBoxFits) {
		t.Fatalf("err = %v, want ErrNoBoxFits", err)
	}
	if got == nil || got.Remaining != 2 {
		t.Fatalf("placement = %+v, want remaining 2", got)
	}
}
