package domain

import (
	"hotelbooking/internal/pkg/calendar"

	"github.com/shopspring/decimal"
)

// InventoryDay is the price and stock of one room on one calendar date.
// At most one row exists per (room_id, day).
type InventoryDay struct {
	ID     int64           `json:"id" gorm:"primaryKey"`
	RoomID int64           `json:"room_id" gorm:"not null;uniqueIndex:idx_inventory_room_day"`
	Day    calendar.Date   `json:"date" gorm:"column:day;type:date;not null;uniqueIndex:idx_inventory_room_day"`
	Price  decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock  int             `json:"stock" gorm:"not null"`
}

func (InventoryDay) TableName() string { return "inventory_days" }
