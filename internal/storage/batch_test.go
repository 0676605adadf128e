package storage

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cellstack/cellstackgo/internal/models"
)

func TestBuildZoneAddsCategoryPrice(t *testing.T) {
	cat := &models.StorageCategory{ID: "cat-1", Price: decimal.NewFromInt(40)}
	zone := buildZone(CreateZoneInput{CategoryID: "cat-1", Name: "Z", Price: decimal.NewFromInt(15)}, cat)

	if !zone.Price.Equal(decimal.NewFromInt(55)) {
		t.Errorf("zone price = %s, want 55 (15 own + 40 category)", zone.Price)
	}
	if zone.CategoryID != "cat-1" || zone.Name != "Z" || zone.ID == "" {
		t.Errorf("zone fields diverge from the request: %+v", zone)
	}
}

func TestRaisedZonePriceAddsExactlyConditionPrice(t *testing.T) {
	before := decimal.NewFromFloat(55.25)
	p := decimal.NewFromFloat(2.75)
	after := raisedZonePrice(before, p)

	if !after.Sub(before).Equal(p) {
		t.Errorf("price delta = %s, want exactly %s", after.Sub(before), p)
	}

	// Attaching two conditions in sequence raises by the sum.
	after = raisedZonePrice(after, decimal.NewFromInt(4))
	if !after.Equal(decimal.NewFromInt(62)) {
		t.Errorf("price after second condition = %s, want 62", after)
	}
}

func TestBuildRackBatchReplicatesUniformly(t *testing.T) {
	zone := &models.Zone{ID: "zone-1", Price: decimal.NewFromInt(12)}
	racks := buildRackBatch(CreateRackInput{
		ZoneID:   "zone-1",
		Name:     "R",
		Quantity: 5,
		Price:    decimal.NewFromInt(200),
		Length:   8.5, Width: 1.2, Height: 10,
	}, zone)

	if len(racks) != 5 {
		t.Fatalf("len = %d, want 5", len(racks))
	}
	want := decimal.NewFromInt(212)
	seen := map[string]bool{}
	for i, r := range racks {
		if seen[r.ID] {
			t.Errorf("duplicate id %s", r.ID)
		}
		seen[r.ID] = true
		if !r.Price.Equal(want) {
			t.Errorf("rack %d price = %s, want %s", i, r.Price, want)
		}
		if r.Length != 8.5 || r.Width != 1.2 || r.Height != 10 || r.ZoneID != "zone-1" {
			t.Errorf("rack %d fields diverge from the request: %+v", i, r)
		}
	}
}

func TestBuildRackBatchDefaultsQuantityToOne(t *testing.T) {
	racks := buildRackBatch(CreateRackInput{ZoneID: "z"}, &models.Zone{ID: "z"})
	if len(racks) != 1 {
		t.Fatalf("len = %d, want 1", len(racks))
	}
}

func TestBuildFloorBatchDecaysGeometrically(t *testing.T) {
	rack := &models.Rack{ID: "rack-1", Length: 8, Width: 2, Price: decimal.NewFromInt(50)}
	floors, err := buildFloorBatch(CreateFloorInput{
		RackID:            "rack-1",
		Quantity:          4,
		MaxPrice:          decimal.NewFromInt(150),
		PriceDecayPercent: 10,
	}, rack)
	if err != nil {
		t.Fatalf("buildFloorBatch: %v", err)
	}
	if len(floors) != 4 {
		t.Fatalf("len = %d, want 4", len(floors))
	}

	// maxPrice0 = 150 + 50; each following floor is 90% of the previous.
	ratio := decimal.NewFromFloat(0.9)
	want := decimal.NewFromInt(200)
	for i, fl := range floors {
		if !fl.MaxPrice.Equal(want) {
			t.Errorf("floor %d max price = %s, want %s", i, fl.MaxPrice, want)
		}
		if i > 0 && !floors[i].MaxPrice.LessThan(floors[i-1].MaxPrice) {
			t.Errorf("floor %d is not cheaper than floor %d", i, i-1)
		}
		want = want.Mul(ratio)
	}
}

func TestBuildFloorBatchZeroDecayKeepsPricesEqual(t *testing.T) {
	rack := &models.Rack{ID: "rack-1", Length: 8, Width: 2}
	floors, err := buildFloorBatch(CreateFloorInput{
		RackID:   "rack-1",
		Quantity: 3,
		MaxPrice: decimal.NewFromInt(100),
	}, rack)
	if err != nil {
		t.Fatalf("buildFloorBatch: %v", err)
	}
	for i, fl := range floors {
		if !fl.MaxPrice.Equal(decimal.NewFromInt(100)) {
			t.Errorf("floor %d max price = %s, want 100", i, fl.MaxPrice)
		}
	}
}

func TestBuildFloorBatchInheritsRackDimensions(t *testing.T) {
	rack := &models.Rack{ID: "rack-1", Length: 8, Width: 2}
	floors, err := buildFloorBatch(CreateFloorInput{RackID: "rack-1", Quantity: 1}, rack)
	if err != nil {
		t.Fatalf("buildFloorBatch: %v", err)
	}
	if floors[0].Length != 8 || floors[0].Width != 2 {
		t.Errorf("dimensions = %v x %v, want 8 x 2 from the rack", floors[0].Length, floors[0].Width)
	}
}

func TestBuildFloorBatchRejectsOversizedDimensions(t *testing.T) {
	rack := &models.Rack{ID: "rack-1", Length: 8, Width: 2}
	for _, in := range []CreateFloorInput{
		{RackID: "rack-1", Length: 9},
		{RackID: "rack-1", Width: 2.5},
	} {
		if _, err := buildFloorBatch(in, rack); !errors.Is(err, ErrDimensionExceeded) {
			t.Errorf("input %+v: err = %v, want ErrDimensionExceeded", in, err)
		}
	}
}

func TestBuildCellBatchDerivesVolume(t *testing.T) {
	floor := &models.Floor{ID: "floor-1", Length: 4, Width: 3, MaxPrice: decimal.NewFromInt(75)}
	cells, err := buildCellBatch(CreateCellInput{
		FloorID:  "floor-1",
		Quantity: 3,
		Length:   2, Width: 2, Height: 1.5,
		WeightCapacity: 50,
		Price:          decimal.NewFromInt(5),
	}, floor)
	if err != nil {
		t.Fatalf("buildCellBatch: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("len = %d, want 3", len(cells))
	}
	for i, c := range cells {
		if c.Volume != 6 {
			t.Errorf("cell %d volume = %v, want 6", i, c.Volume)
		}
		if !c.Price.Equal(decimal.NewFromInt(80)) {
			t.Errorf("cell %d price = %s, want 80", i, c.Price)
		}
		if c.Status != models.CellStatusActive {
			t.Errorf("cell %d status = %q, want active", i, c.Status)
		}
		// No decay across cells, unlike floors.
		if i > 0 && !c.Price.Equal(cells[0].Price) {
			t.Errorf("cell %d price diverges within the batch", i)
		}
	}
}

func TestBuildCellBatchBoundsAndDefaults(t *testing.T) {
	floor := &models.Floor{ID: "floor-1", Length: 4, Width: 3}

	if _, err := buildCellBatch(CreateCellInput{FloorID: "floor-1", Length: 5}, floor); !errors.Is(err, ErrDimensionExceeded) {
		t.Errorf("oversized length: err = %v, want ErrDimensionExceeded", err)
	}
	if _, err := buildCellBatch(CreateCellInput{FloorID: "floor-1", Width: 4}, floor); !errors.Is(err, ErrDimensionExceeded) {
		t.Errorf("oversized width: err = %v, want ErrDimensionExceeded", err)
	}

	cells, err := buildCellBatch(CreateCellInput{FloorID: "floor-1", Height: 2}, floor)
	if err != nil {
		t.Fatalf("buildCellBatch: %v", err)
	}
	if cells[0].Length != 4 || cells[0].Width != 3 {
		t.Errorf("dimensions = %v x %v, want 4 x 3 from the floor", cells[0].Length, cells[0].Width)
	}
	if cells[0].Volume != 24 {
		t.Errorf("volume = %v, want 24", cells[0].Volume)
	}
}

func TestBuildCellBatchDefaultsHeightAndWeightBeforeDerivingVolume(t *testing.T) {
	floor := &models.Floor{ID: "floor-1", Length: 4, Width: 3}
	cells, err := buildCellBatch(CreateCellInput{FloorID: "floor-1", Name: "C"}, floor)
	if err != nil {
		t.Fatalf("buildCellBatch: %v", err)
	}
	if cells[0].Height != 1 {
		t.Errorf("height = %v, want default 1", cells[0].Height)
	}
	if cells[0].WeightCapacity != 100 {
		t.Errorf("weight capacity = %v, want default 100", cells[0].WeightCapacity)
	}
	// 4 * 3 * 1: the default height must be in place before the volume
	// derivation, or the cell persists with zero capacity.
	if cells[0].Volume != 12 {
		t.Errorf("volume = %v, want 12", cells[0].Volume)
	}
}

func TestBuildFloorBatchDefaultsHeightAndWeight(t *testing.T) {
	rack := &models.Rack{ID: "rack-1", Length: 8, Width: 2}
	floors, err := buildFloorBatch(CreateFloorInput{RackID: "rack-1"}, rack)
	if err != nil {
		t.Fatalf("buildFloorBatch: %v", err)
	}
	if floors[0].Height != 1 || floors[0].WeightCapacity != 100 {
		t.Errorf("height = %v, weight capacity = %v, want 1 and 100",
			floors[0].Height, floors[0].WeightCapacity)
	}
}

func TestBuildBoxBatchSnapshotsType(t *testing.T) {
	bt := &models.BoxType{
		ID: "bt-1", Length: 3, Width: 2, Height: 5,
		Area: 6, Volume: 30,
	}
	boxes := buildBoxBatch(CreateBoxInput{BoxTypeID: "bt-1", Quantity: 4, Weight: 1.5}, bt, "wh-1")
	if len(boxes) != 4 {
		t.Fatalf("len = %d, want 4", len(boxes))
	}
	for i, b := range boxes {
		if b.Length != 3 || b.Width != 2 || b.Height != 5 || b.Area != 6 || b.Volume != 30 {
			t.Errorf("box %d did not snapshot the type dimensions: %+v", i, b)
		}
		if b.Address != models.BoxAddressOutside {
			t.Errorf("box %d address = %q, want outside", i, b.Address)
		}
		if b.WarehouseID != "wh-1" || b.Status != models.BoxStatusActive {
			t.Errorf("box %d fields wrong: %+v", i, b)
		}
	}
}

func TestWithoutGate(t *testing.T) {
	gates := []models.Gate{{Name: "north"}, {Name: "south"}}
	got := withoutGate(gates, "north")
	if len(got) != 1 || got[0].Name != "south" {
		t.Errorf("got %+v, want just south", got)
	}
	if got := withoutGate(gates, "missing"); len(got) != 2 {
		t.Errorf("removing an unknown gate should keep all, got %+v", got)
	}
}
