package repository

import (
	"context"
	"fmt"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomFilter struct {
	Keyword     string
	City        string
	StarRatings []int
	RoomType    string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Window      *calendar.StayWindow
}

// RoomMatch is a bookable (hotel, room) pair with its cheapest qualifying night.
type RoomMatch struct {
	HotelID  int64           `gorm:"column:hotel_id"`
	RoomID   int64           `gorm:"column:room_id"`
	MinPrice decimal.Decimal `gorm:"column:min_price"`
}

// AvailabilityRepository holds the read-only queries of the matcher.
type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// MatchRooms joins published hotels, their rooms and day records. With a
// window a room qualifies only when every night of it has stock and, if a
// range is given, a price inside the range. Without a window any such day
// qualifies the room.
func (r *AvailabilityRepository) MatchRooms(ctx context.Context, f RoomFilter) ([]RoomMatch, error) {
	q := r.db.WithContext(ctx).
		Table("hotels AS h").
		Select("h.id AS hotel_id, rm.id AS room_id, MIN(d.price) AS min_price").
		Joins("JOIN rooms rm ON rm.hotel_id = h.id").
		Joins("JOIN inventory_days d ON d.room_id = rm.id").
		Where("h.status = ?", domain.HotelPublished).
		Where("d.stock > 0")

	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("(LOWER(h.name) LIKE ? OR LOWER(h.address) LIKE ?)", like, like)
	}
	if f.City != "" {
		q = q.Where("h.city = ?", f.City)
	}
	if len(f.StarRatings) > 0 {
		q = q.Where("h.star_rating IN ?", f.StarRatings)
	}
	if f.RoomType != "" {
		q = q.Where("rm.room_type = ?", f.RoomType)
	}
	if f.MinPrice != nil {
		q = q.Where("d.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("d.price <= ?", *f.MaxPrice)
	}

	q = q.Group("h.id, rm.id")
	if f.Window != nil {
		q = q.Where("d.day >= ? AND d.day < ?", f.Window.CheckIn, f.Window.End()).
			Having("COUNT(DISTINCT d.day) = ?", f.Window.Nights())
	}

	var out []RoomMatch
	if err := q.Order("h.id, rm.id").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("match rooms: %w", err)
	}
	return out, nil
}

// StockOn returns the stock of each room's day record on day.
func (r *AvailabilityRepository) StockOn(ctx context.Context, roomIDs []int64, day calendar.Date) (map[int64]int, error) {
	out := make(map[int64]int, len(roomIDs))
	if len(roomIDs) == 0 {
		return out, nil
	}

	var rows []domain.InventoryDay
	err := r.db.WithContext(ctx).
		Where("room_id IN ? AND day = ?", roomIDs, day).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("stock on %s: %w", day, err)
	}
	for _, row := range rows {
		out[row.RoomID] = row.Stock
	}
	return out, nil
}

// RoomAverages returns the average nightly price per room of a hotel. With a
// window only rooms in stock on every night are returned; without one the
// average runs over every day record.
func (r *AvailabilityRepository) RoomAverages(ctx context.Context, hotelID int64, w *calendar.StayWindow) (map[int64]decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Table("inventory_days AS d").
		Select("d.room_id AS room_id, AVG(d.price) AS avg_price").
		Joins("JOIN rooms rm ON rm.id = d.room_id").
		Where("rm.hotel_id = ?", hotelID).
		Group("d.room_id")

	if w != nil {
		q = q.Where("d.day >= ? AND d.day < ? AND d.stock > 0", w.CheckIn, w.End()).
			Having("COUNT(DISTINCT d.day) = ?", w.Nights())
	}

	type row struct {
		RoomID   int64           `gorm:"column:room_id"`
		AvgPrice decimal.Decimal `gorm:"column:avg_price"`
	}
	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("room averages: %w", err)
	}

	out := make(map[int64]decimal.Decimal, len(rows))
	for _, row := range rows {
		out[row.RoomID] = row.AvgPrice
	}
	return out, nil
}
