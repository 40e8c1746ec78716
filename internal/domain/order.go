package domain

import (
	"time"

	"hotelbooking/internal/pkg/calendar"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCheckedIn OrderStatus = "checked_in"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// CanTransition reports whether an order in status s may move to next.
// Cancelling a paid order also depends on the order's cancellable flag.
func (s OrderStatus) CanTransition(next OrderStatus, cancellable bool) bool {
	switch s {
	case OrderPending:
		return next == OrderPaid || next == OrderCancelled
	case OrderPaid:
		return next == OrderCheckedIn || (next == OrderCancelled && cancellable)
	case OrderCheckedIn:
		return next == OrderCompleted
	default:
		return false
	}
}

func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type Order struct {
	ID             string          `json:"order_id" gorm:"primaryKey;type:varchar(36)"`
	UserID         int64           `json:"user_id" gorm:"index;not null"`
	HotelID        int64           `json:"hotel_id" gorm:"index;not null"`
	RoomID         int64           `json:"room_id" gorm:"index;not null"`
	CheckIn        calendar.Date   `json:"check_in" gorm:"type:date;not null"`
	CheckOut       calendar.Date   `json:"check_out" gorm:"type:date;not null"`
	Nights         int             `json:"nights" gorm:"not null"`
	RoomCount      int             `json:"room_count" gorm:"not null"`
	TotalPrice     decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null"`
	Discount       decimal.Decimal `json:"discount" gorm:"type:decimal(12,2);not null"`
	RealPay        decimal.Decimal `json:"real_pay" gorm:"type:decimal(12,2);not null"`
	Status         OrderStatus     `json:"status" gorm:"type:varchar(20);index;not null"`
	Cancellable    bool            `json:"cancellable"`
	SpecialRequest string          `json:"special_request,omitempty" gorm:"type:text"`
	IDCards        datatypes.JSON  `json:"id_cards,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	CancelledAt    *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Days []OrderDayDetail `json:"days" gorm:"foreignKey:OrderID"`
}

// OrderDayDetail is one night of an order. UnitPrice is the ledger price
// captured at creation; Price is UnitPrice times the room count.
type OrderDayDetail struct {
	ID             int64           `json:"-" gorm:"primaryKey"`
	OrderID        string          `json:"-" gorm:"type:varchar(36);index;not null"`
	Day            calendar.Date   `json:"date" gorm:"column:day;type:date;not null"`
	UnitPrice      decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	BreakfastCount int             `json:"breakfast_count"`
}
