package admin

import (
	"context"

	"hotelbooking/internal/domain"
)

type HotelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	ListByStatus(ctx context.Context, status domain.HotelStatus, limit, offset int) ([]domain.Hotel, int64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.HotelStatus) error
}

type ReviewRepository interface {
	SetHidden(ctx context.Context, id int64, hidden bool) error
}
