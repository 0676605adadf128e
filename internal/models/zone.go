package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Zone groups environmental conditions under a category. Its price starts
// at the caller-supplied base plus the parent category's price, and grows
// by the price of every condition attached afterwards. The cascade happens
// once at write time; it is not a live formula.
type Zone struct {
	ID         string          `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID string          `gorm:"type:uuid;not null;index" json:"category_id"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category   *StorageCategory   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Conditions []StorageCondition `gorm:"foreignKey:ZoneID" json:"conditions,omitempty"`
	Racks      []Rack             `gorm:"foreignKey:ZoneID" json:"racks,omitempty"`
}

func (Zone) TableName() string { return "zones" }
