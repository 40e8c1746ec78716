package domain

import "time"

type HotelStatus string

const (
	HotelPending   HotelStatus = "pending"
	HotelPublished HotelStatus = "published"
	HotelRejected  HotelStatus = "rejected"
)

// Hotel status is driven by the moderation workflow; only published
// hotels are visible to search and detail views.
type Hotel struct {
	ID          int64       `json:"id" gorm:"primaryKey"`
	MerchantID  int64       `json:"merchant_id" gorm:"index;not null"`
	Name        string      `json:"name" gorm:"not null" validate:"required"`
	City        string      `json:"city" gorm:"index"`
	Address     string      `json:"address"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	StarRating  int         `json:"star_rating" validate:"gte=0,lte=5"`
	Score       float64     `json:"score" gorm:"index"`
	Status      HotelStatus `json:"status" gorm:"type:varchar(20);index;not null;default:pending"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Media []HotelMedia `json:"media,omitempty" gorm:"foreignKey:HotelID"`
	Rooms []Room       `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
}

type HotelMedia struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	HotelID   int64     `json:"hotel_id" gorm:"index;not null"`
	URL       string    `json:"url" gorm:"not null"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
