package storage

import "errors"

// Sentinel errors returned by the stores. Callers match them with
// errors.Is; the HTTP layer maps them onto status codes.
var (
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrCategoryNotFound  = errors.New("storage category not found")
	ErrZoneNotFound      = errors.New("zone not found")
	ErrConditionNotFound = errors.New("storage condition not found")
	ErrRackNotFound      = errors.New("rack not found")
	ErrFloorNotFound     = errors.New("floor not found")
	ErrCellNotFound      = errors.New("cell not found")
	ErrBoxNotFound       = errors.New("box not found")
	ErrBoxTypeNotFound   = errors.New("box type not found")

	// ErrDimensionExceeded is returned when a child's non-zero dimension is
	// larger than the corresponding dimension of its parent.
	ErrDimensionExceeded = errors.New("dimension exceeds parent dimension")

	// ErrCapacityExhausted is returned by CellStore.Reserve when the cell no
	// longer holds enough volume or weight capacity by the time the
	// reservation is applied. The allocation engine treats it as "try the
	// next candidate", not as a terminal failure.
	ErrCapacityExhausted = errors.New("cell capacity already consumed")

	// ErrBoxBusy is returned when a box that is not active is asked to take
	// on products.
	ErrBoxBusy = errors.New("box is not active")

	// ErrEmptyUpdate is returned when a partial update carries no fields.
	ErrEmptyUpdate = errors.New("no fields to update")
)
