package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rack is the first physical subdivision of a zone. Racks are created in
// batches: one request with quantity N yields N independent rows that share
// every field except the id. The price is the request's base plus the
// owning zone's price, applied uniformly to the whole batch.
type Rack struct {
	ID     string          `gorm:"type:uuid;primaryKey" json:"id"`
	ZoneID string          `gorm:"type:uuid;not null;index" json:"zone_id"`
	Name   string          `gorm:"type:varchar(100);not null" json:"name"`
	Length float64         `gorm:"not null" json:"length"`
	Width  float64         `gorm:"not null" json:"width"`
	Height float64         `gorm:"not null" json:"height"`
	Price  decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Zone   *Zone   `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	Floors []Floor `gorm:"foreignKey:RackID" json:"floors,omitempty"`
}

func (Rack) TableName() string { return "racks" }
