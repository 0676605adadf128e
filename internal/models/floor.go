package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Floor is a level of a rack. Length and width default to the rack's when
// the caller supplies zero, and may not exceed them. Within one creation
// batch the max price decays geometrically: unit i gets
// maxPrice0 * (1 - decay/100)^i, so later floors are cheaper.
type Floor struct {
	ID                string          `gorm:"type:uuid;primaryKey" json:"id"`
	RackID            string          `gorm:"type:uuid;not null;index" json:"rack_id"`
	Name              string          `gorm:"type:varchar(100);not null" json:"name"`
	Length            float64         `json:"length"`
	Width             float64         `json:"width"`
	Height            float64         `gorm:"default:1" json:"height"`
	WeightCapacity    float64         `gorm:"default:100" json:"weight_capacity"`
	MaxPrice          decimal.Decimal `gorm:"type:numeric(12,2)" json:"max_price"`
	PriceDecayPercent float64         `gorm:"default:5" json:"price_decay_percent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Rack  *Rack  `gorm:"foreignKey:RackID" json:"rack,omitempty"`
	Cells []Cell `gorm:"foreignKey:FloorID" json:"cells,omitempty"`
}

func (Floor) TableName() string { return "floors" }
