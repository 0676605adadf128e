package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StorageCategory is a preservation-duration tier of a warehouse. An item
// can only be stored under a category whose TimeThreshold covers the item's
// storing duration.
type StorageCategory struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	WarehouseID   string          `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	TimeThreshold int             `gorm:"not null" json:"time_threshold"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Zones     []Zone     `gorm:"foreignKey:CategoryID" json:"zones,omitempty"`
}

func (StorageCategory) TableName() string { return "storage_categories" }
