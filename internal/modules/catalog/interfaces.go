package catalog

import (
	"context"

	"hotelbooking/internal/domain"
)

type HotelRepository interface {
	Create(ctx context.Context, h *domain.Hotel) error
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	ListByMerchant(ctx context.Context, merchantID int64) ([]domain.Hotel, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
	IsOwnedBy(ctx context.Context, merchantID, hotelID, roomID int64) (bool, error)
	// Delete removes the room and every inventory day recorded for it.
	Delete(ctx context.Context, id int64) error
}
