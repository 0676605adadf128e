package models

import (
	"time"

	"gorm.io/datatypes"
)

// Warehouse is the root of the storage hierarchy. Every category, and
// through it every zone, rack, floor and cell, hangs off a warehouse.
type Warehouse struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName string         `gorm:"type:varchar(100);not null;index" json:"company_name"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	Street      string         `gorm:"type:varchar(100)" json:"street"`
	City        string         `gorm:"type:varchar(100)" json:"city"`
	Region      string         `gorm:"type:varchar(50)" json:"region"`
	Country     string         `gorm:"type:varchar(50)" json:"country"`
	Gates       datatypes.JSON `gorm:"default:'[]'" json:"gates"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Categories []StorageCategory `gorm:"foreignKey:WarehouseID" json:"categories,omitempty"`
}

func (Warehouse) TableName() string { return "warehouses" }

// Gate is a loading gate entry stored inside Warehouse.Gates.
type Gate struct {
	Name string `json:"gate_name"`
}
