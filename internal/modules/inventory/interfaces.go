package inventory

import (
	"context"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"
	"hotelbooking/internal/repository"
)

// Ledger is the inventory day store the mutator writes through.
type Ledger interface {
	repository.DayStore
	GetRange(ctx context.Context, roomID int64, from, to calendar.Date) ([]domain.InventoryDay, error)
	AggregateSum(ctx context.Context, roomIDs []int64, from, to calendar.Date) (map[int64]int64, error)
	Atomic(ctx context.Context, fn func(tx repository.DayStore) error) error
}

type RoomRepository interface {
	IsOwnedBy(ctx context.Context, merchantID, hotelID, roomID int64) (bool, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
}

type HotelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}
