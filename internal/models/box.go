package models

import (
	"time"

	"gorm.io/datatypes"
)

// Box statuses.
const (
	BoxStatusActive = "active"
	BoxStatusInBox  = "inbox"
)

// BoxAddressOutside is the address of a box that is not inside any cell.
const BoxAddressOutside = "outside"

// BoxType is a dimension template for boxes. Area and volume are derived
// from the dimensions at creation time and copied onto every box made from
// the type.
type BoxType struct {
	ID     string  `gorm:"type:uuid;primaryKey" json:"id"`
	Name   string  `gorm:"type:varchar(50);not null" json:"name"`
	Height float64 `gorm:"default:5" json:"height"`
	Length float64 `gorm:"default:3" json:"length"`
	Width  float64 `gorm:"default:2" json:"width"`
	Area   float64 `json:"area"`
	Volume float64 `json:"volume"`
	Status string  `gorm:"type:varchar(20);default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BoxType) TableName() string { return "box_types" }

// Box is a portable container tied to a warehouse. Boxes are batch-created
// like racks; each copy snapshots the dimensions, area and volume of its
// type rather than referencing them live.
type Box struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	BoxTypeID   string         `gorm:"type:uuid;not null;index" json:"box_type_id"`
	WarehouseID string         `gorm:"type:uuid;not null;index" json:"warehouse_id"`
	Weight      float64        `gorm:"default:5" json:"weight"`
	Address     string         `gorm:"type:varchar(100);default:'outside'" json:"address"`
	Length      float64        `json:"length"`
	Width       float64        `json:"width"`
	Height      float64        `json:"height"`
	Area        float64        `json:"area"`
	Volume      float64        `json:"volume"`
	Status      string         `gorm:"type:varchar(20);default:'active'" json:"status"`
	Products    datatypes.JSON `gorm:"default:'[]'" json:"products"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BoxType *BoxType `gorm:"foreignKey:BoxTypeID" json:"box_type,omitempty"`
}

func (Box) TableName() string { return "boxes" }
