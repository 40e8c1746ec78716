package catalog

import "github.com/shopspring/decimal"

// ---------- HOTEL ----------

type CreateHotelRequest struct {
	MerchantID  int64    `json:"-" validate:"required"`
	Name        string   `json:"name" binding:"required" validate:"required,max=200"`
	City        string   `json:"city" binding:"required" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	Description string   `json:"description"`
	StarRating  int      `json:"star_rating" validate:"gte=0,lte=5"`
	MediaURLs   []string `json:"media_urls,omitempty" validate:"dive,required,max=500"`
}

// ---------- ROOMS ----------

type CreateRoomRequest struct {
	Name          string           `json:"name" binding:"required" validate:"required"`
	RoomType      string           `json:"room_type" binding:"required" validate:"required"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Cancellable   bool             `json:"cancellable"`
}
