package order

import (
	"hotelbooking/internal/domain"

	"github.com/shopspring/decimal"
)

// Actor is the authenticated caller of an order operation.
type Actor struct {
	UserID int64
	Role   domain.UserRole
}

type CreateOrderRequest struct {
	UserID         int64    `json:"-" validate:"required"`
	RoomID         int64    `json:"room_id" binding:"required" validate:"required"`
	CheckIn        string   `json:"check_in" binding:"required" validate:"required"`
	CheckOut       string   `json:"check_out" binding:"required" validate:"required"`
	RoomCount      int      `json:"room_count" validate:"gte=1,lte=20"`
	SpecialRequest string   `json:"special_request,omitempty" validate:"max=1000"`
	IDCards        []string `json:"id_cards,omitempty" validate:"dive,required"`
}

type BreakfastPatch struct {
	Date  string `json:"date" validate:"required"`
	Count int    `json:"count" validate:"gte=0"`
}

// Patch carries the guest's edits to a pending order. Nil fields are left
// as they are.
type Patch struct {
	SpecialRequest *string          `json:"special_request,omitempty" validate:"omitempty,max=1000"`
	IDCards        *[]string        `json:"id_cards,omitempty"`
	RoomCount      *int             `json:"room_count,omitempty" validate:"omitempty,gte=1,lte=20"`
	Breakfast      []BreakfastPatch `json:"breakfast,omitempty" validate:"dive"`
	Discount       *decimal.Decimal `json:"discount,omitempty"`
}

type ListResult struct {
	Orders []domain.Order `json:"orders"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
