package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Cell statuses. The allocation engine only ever performs the
// active -> inwaiting transition; the remaining statuses are set by
// administrative updates.
const (
	CellStatusActive    = "active"
	CellStatusInWaiting = "inwaiting"
	CellStatusInactive  = "inactive"
)

// Cell is the leaf storage unit where products are actually placed.
// Volume and WeightCapacity are live counters: each successful allocation
// decrements them and they must never go negative.
type Cell struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	FloorID        string          `gorm:"type:uuid;not null;index" json:"floor_id"`
	Name           string          `gorm:"type:varchar(100);not null" json:"name"`
	Length         float64         `json:"length"`
	Width          float64         `json:"width"`
	Height         float64         `gorm:"default:1" json:"height"`
	WeightCapacity float64         `gorm:"default:100" json:"weight_capacity"`
	Volume         float64         `json:"volume"`
	Price          decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Status         string          `gorm:"type:varchar(20);default:'active'" json:"status"`
	Products       datatypes.JSON  `gorm:"default:'[]'" json:"products"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Floor *Floor `gorm:"foreignKey:FloorID" json:"floor,omitempty"`
}

func (Cell) TableName() string { return "cells" }

// ProductRef is one entry of a cell or box product manifest, recorded at
// the moment the product is placed. FillPercent is computed against the
// cell volume before the decrement.
type ProductRef struct {
	ProductID       string    `json:"product_id"`
	Name            string    `json:"name"`
	Volume          float64   `json:"volume"`
	Weight          float64   `json:"weight"`
	Quantity        int       `json:"quantity,omitempty"`
	StoringDuration int       `json:"storing_duration,omitempty"`
	FillPercent     float64   `json:"fill_percent,omitempty"`
	PlacedAt        time.Time `json:"placed_at"`
}

// Reservation is the unit of work applied to a cell by the allocation
// engine: decrement both capacity counters and append the product ref in
// one conditional store call.
type Reservation struct {
	Volume  float64
	Weight  float64
	Product ProductRef
}
