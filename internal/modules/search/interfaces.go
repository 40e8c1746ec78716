package search

import (
	"context"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"
	"hotelbooking/internal/repository"

	"github.com/shopspring/decimal"
)

type AvailabilityRepository interface {
	MatchRooms(ctx context.Context, f repository.RoomFilter) ([]repository.RoomMatch, error)
	StockOn(ctx context.Context, roomIDs []int64, day calendar.Date) (map[int64]int, error)
	RoomAverages(ctx context.Context, hotelID int64, w *calendar.StayWindow) (map[int64]decimal.Decimal, error)
}

type HotelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Hotel, error)
	CountHigherScored(ctx context.Context, h *domain.Hotel, city string) (int64, error)
}

type RoomRepository interface {
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.Room, error)
}

type ReviewRepository interface {
	ListContents(ctx context.Context, hotelID int64) ([]string, error)
}
