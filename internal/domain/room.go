package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomDouble   RoomType = "double"
	RoomTwin     RoomType = "twin"
	RoomFamily   RoomType = "family"
	RoomSuite    RoomType = "suite"
)

var roomTypes = []RoomType{RoomStandard, RoomDouble, RoomTwin, RoomFamily, RoomSuite}

func RoomTypes() []RoomType {
	out := make([]RoomType, len(roomTypes))
	copy(out, roomTypes)
	return out
}

func ParseRoomType(s string) (RoomType, error) {
	v := RoomType(strings.ToLower(strings.TrimSpace(s)))
	for _, rt := range roomTypes {
		if rt == v {
			return rt, nil
		}
	}
	return "", fmt.Errorf("unknown room type %q", s)
}

type Room struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	HotelID       int64           `json:"hotel_id" gorm:"index;not null"`
	Name          string          `json:"name" gorm:"not null" validate:"required"`
	RoomType      RoomType        `json:"room_type" gorm:"type:varchar(20);index"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	OriginalPrice decimal.Decimal `json:"original_price" gorm:"type:decimal(12,2);not null"`
	// Cancellable is the free-cancellation policy copied onto every order.
	Cancellable bool      `json:"cancellable"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
