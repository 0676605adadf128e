package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StorageCondition is a named environmental constraint of a zone, such as
// a temperature or humidity window. Attaching one raises the owning zone's
// price by the condition's price.
type StorageCondition struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	ZoneID      string          `gorm:"type:uuid;not null;index" json:"zone_id"`
	Name        string          `gorm:"type:varchar(100);not null" json:"name"`
	WindowStart int             `gorm:"not null" json:"window_start"`
	WindowEnd   int             `gorm:"default:3" json:"window_end"`
	Active      bool            `gorm:"default:false" json:"active"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Zone *Zone `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
}

func (StorageCondition) TableName() string { return "storage_conditions" }
