package domain

import "time"

type Review struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	HotelID   int64     `json:"hotel_id" gorm:"index;not null"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content,omitempty" gorm:"type:text"`
	IsHidden  bool      `json:"is_hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
