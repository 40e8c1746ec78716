package admin

import "hotelbooking/internal/domain"

type RejectHotelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ReviewVisibilityRequest struct {
	Hidden bool `json:"hidden"`
}

type HotelListResponse struct {
	Hotels []domain.Hotel `json:"hotels"`
	Total  int            `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}
