package order

import (
	"context"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"
)

// Ledger is the read side of the inventory the order snapshot comes from.
type Ledger interface {
	Get(ctx context.Context, roomID int64, dates []calendar.Date) (map[calendar.Date]domain.InventoryDay, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type HotelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error)
	SavePending(ctx context.Context, o *domain.Order, status domain.OrderStatus) (bool, error)
	Transition(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error)
}
