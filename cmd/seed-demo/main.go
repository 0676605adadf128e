package main

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/cellstack/cellstackgo/internal/config"
	"github.com/cellstack/cellstackgo/internal/database"
	"github.com/cellstack/cellstackgo/internal/models"
	"github.com/cellstack/cellstackgo/internal/storage"
)

func main() {
	fmt.Println("🌱 CellStack Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.Warehouse{},
		&models.StorageCategory{},
		&models.Zone{},
		&models.StorageCondition{},
		&models.Rack{},
		&models.Floor{},
		&models.Cell{},
		&models.BoxType{},
		&models.Box{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	var warehouseCount int64
	db.Model(&models.Warehouse{}).Count(&warehouseCount)
	if warehouseCount > 0 {
		fmt.Printf("⚠️  Database already has %d warehouses. Clear it first? (y/N): ", warehouseCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE boxes CASCADE")
		db.Exec("TRUNCATE TABLE box_types CASCADE")
		db.Exec("TRUNCATE TABLE cells CASCADE")
		db.Exec("TRUNCATE TABLE floors CASCADE")
		db.Exec("TRUNCATE TABLE racks CASCADE")
		db.Exec("TRUNCATE TABLE storage_conditions CASCADE")
		db.Exec("TRUNCATE TABLE zones CASCADE")
		db.Exec("TRUNCATE TABLE storage_categories CASCADE")
		db.Exec("TRUNCATE TABLE warehouses CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println("📦 Creating demo data...")

	ctx := context.Background()
	warehouses := storage.NewWarehouseStore(db.DB)
	categories := storage.NewCategoryStore(db.DB)
	zones := storage.NewZoneStore(db.DB)
	conditions := storage.NewConditionStore(db.DB)
	racks := storage.NewRackStore(db.DB)
	floors := storage.NewFloorStore(db.DB)
	cells := storage.NewCellStore(db.DB)
	boxTypes := storage.NewBoxTypeStore(db.DB)
	boxes := storage.NewBoxStore(db.DB)

	wh, err := warehouses.Create(ctx, storage.CreateWarehouseInput{
		CompanyName: "Acme Logistics",
		Name:        "Central",
		Street:      "Hafenstrasse 12",
		City:        "Hamburg",
		Region:      "HH",
		Country:     "DE",
	})
	if err != nil {
		log.Fatalf("❌ Warehouse: %v", err)
	}
	for _, gate := range []string{"North Dock", "South Dock"} {
		if err := warehouses.AddGate(ctx, wh.ID, models.Gate{Name: gate}); err != nil {
			log.Fatalf("❌ Gate %s: %v", gate, err)
		}
	}
	fmt.Printf("🏭 Warehouse %q created\n", wh.Name)

	type categorySpec struct {
		name      string
		threshold int
		price     decimal.Decimal
	}
	specs := []categorySpec{
		{"Short term", 30, decimal.NewFromInt(5)},
		{"Seasonal", 180, decimal.NewFromInt(12)},
		{"Long term", 720, decimal.NewFromInt(25)},
	}

	for _, spec := range specs {
		cat, err := categories.Create(ctx, storage.CreateCategoryInput{
			WarehouseID:   wh.ID,
			Name:          spec.name,
			TimeThreshold: spec.threshold,
			Price:         spec.price,
		})
		if err != nil {
			log.Fatalf("❌ Category %s: %v", spec.name, err)
		}

		zone, err := zones.Create(ctx, storage.CreateZoneInput{
			CategoryID: cat.ID,
			Name:       spec.name + " zone",
			Price:      decimal.NewFromInt(3),
		})
		if err != nil {
			log.Fatalf("❌ Zone: %v", err)
		}

		if _, err := conditions.Create(ctx, storage.CreateConditionInput{
			ZoneID:      zone.ID,
			Name:        "Dry",
			WindowStart: 8,
			WindowEnd:   18,
			Active:      true,
			Price:       decimal.NewFromInt(2),
		}); err != nil {
			log.Fatalf("❌ Condition: %v", err)
		}

		rackRows, err := racks.Create(ctx, storage.CreateRackInput{
			ZoneID:   zone.ID,
			Name:     "Rack",
			Quantity: 2,
			Price:    decimal.NewFromInt(4),
			Length:   400,
			Width:    120,
			Height:   300,
		})
		if err != nil {
			log.Fatalf("❌ Racks: %v", err)
		}

		for _, rack := range rackRows {
			floorRows, err := floors.Create(ctx, storage.CreateFloorInput{
				RackID:            rack.ID,
				Name:              "Floor",
				Quantity:          3,
				WeightCapacity:    500,
				MaxPrice:          decimal.NewFromInt(10),
				PriceDecayPercent: 10,
			})
			if err != nil {
				log.Fatalf("❌ Floors: %v", err)
			}

			for _, floor := range floorRows {
				if _, err := cells.Create(ctx, storage.CreateCellInput{
					FloorID:        floor.ID,
					Name:           "Cell",
					Quantity:       4,
					Length:         100,
					Width:          120,
					Height:         100,
					WeightCapacity: 120,
					Price:          decimal.NewFromInt(1),
				}); err != nil {
					log.Fatalf("❌ Cells: %v", err)
				}
			}
		}
		fmt.Printf("🗂  %s: 2 racks, 6 floors, 24 cells\n", spec.name)
	}

	bt, err := boxTypes.Create(ctx, storage.CreateBoxTypeInput{
		Name:   "Euro box 60",
		Length: 60,
		Width:  40,
		Height: 32,
	})
	if err != nil {
		log.Fatalf("❌ Box type: %v", err)
	}
	if _, err := boxes.Create(ctx, storage.CreateBoxInput{
		BoxTypeID:   bt.ID,
		WarehouseID: wh.ID,
		Quantity:    10,
		Weight:      1.2,
	}); err != nil {
		log.Fatalf("❌ Boxes: %v", err)
	}
	fmt.Println("📦 10 boxes of type \"Euro box 60\" created")

	fmt.Println("✅ Demo data ready")
}
