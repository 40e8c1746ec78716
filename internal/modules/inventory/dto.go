package inventory

import (
	"hotelbooking/internal/pkg/calendar"

	"github.com/shopspring/decimal"
)

// Operation selects one of the batch mutations.
type Operation string

const (
	OpAdd    Operation = "add"
	OpUpdate Operation = "update"
	OpClear  Operation = "clear"
)

func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OpAdd, OpUpdate, OpClear:
		return op, nil
	}
	return "", ErrUnknownOperation
}

type BatchRequest struct {
	MerchantID int64            `json:"-" validate:"required"`
	HotelID    int64            `json:"hotel_id" binding:"required" validate:"required"`
	RoomID     int64            `json:"room_id" binding:"required" validate:"required"`
	StartDate  string           `json:"start_date" binding:"required" validate:"required"`
	EndDate    string           `json:"end_date" binding:"required" validate:"required"`
	Weekdays   []int            `json:"weekdays,omitempty" validate:"dive,gte=0,lte=6"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Stock      *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

// Batch is an expanded request: the concrete dates and the values to write.
type Batch struct {
	Dates []calendar.Date
	Price *decimal.Decimal
	Stock *int
}

type BatchResult struct {
	Operation Operation `json:"operation"`
	Affected  int       `json:"affected"`
	Dates     []string  `json:"dates"`
}

type RoomStock struct {
	RoomID     int64  `json:"room_id"`
	RoomName   string `json:"room_name"`
	TotalStock int64  `json:"total_stock"`
}
