package repository

import (
	"context"
	"fmt"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DayStore is the part of the ledger usable inside a transaction.
type DayStore interface {
	Get(ctx context.Context, roomID int64, dates []calendar.Date) (map[calendar.Date]domain.InventoryDay, error)
	UpsertIfAbsent(ctx context.Context, roomID int64, day calendar.Date, price decimal.Decimal, stock int) error
	UpdateExisting(ctx context.Context, roomID int64, day calendar.Date, price *decimal.Decimal, stock *int) error
}

// InventoryRepository is the per-room-per-day ledger.
type InventoryRepository struct {
	db   *gorm.DB
	inTx bool
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Atomic runs fn in one transaction; any error rolls every write back.
func (r *InventoryRepository) Atomic(ctx context.Context, fn func(tx DayStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&InventoryRepository{db: tx, inTx: true})
	})
}

func (r *InventoryRepository) Get(ctx context.Context, roomID int64, dates []calendar.Date) (map[calendar.Date]domain.InventoryDay, error) {
	out := make(map[calendar.Date]domain.InventoryDay, len(dates))
	if len(dates) == 0 {
		return out, nil
	}

	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = d.String()
	}

	q := r.db.WithContext(ctx).Where("room_id = ? AND day IN ?", roomID, keys)
	if r.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []domain.InventoryDay
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get inventory days: %w", err)
	}
	for _, row := range rows {
		out[row.Day] = row
	}
	return out, nil
}

// GetRange returns the day records of a room in [from, to), ordered by day.
func (r *InventoryRepository) GetRange(ctx context.Context, roomID int64, from, to calendar.Date) ([]domain.InventoryDay, error) {
	var rows []domain.InventoryDay
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND day >= ? AND day < ?", roomID, from, to).
		Order("day").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get inventory range: %w", err)
	}
	return rows, nil
}

func (r *InventoryRepository) UpsertIfAbsent(ctx context.Context, roomID int64, day calendar.Date, price decimal.Decimal, stock int) error {
	row := domain.InventoryDay{RoomID: roomID, Day: day, Price: price, Stock: stock}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: room %d on %s", ErrConflict, roomID, day)
		}
		return fmt.Errorf("insert inventory day: %w", err)
	}
	return nil
}

// UpdateExisting changes only the non-nil fields of an existing record.
func (r *InventoryRepository) UpdateExisting(ctx context.Context, roomID int64, day calendar.Date, price *decimal.Decimal, stock *int) error {
	updates := map[string]any{}
	if price != nil {
		updates["price"] = *price
	}
	if stock != nil {
		updates["stock"] = *stock
	}
	if len(updates) == 0 {
		return nil
	}

	tx := r.db.WithContext(ctx).
		Model(&domain.InventoryDay{}).
		Where("room_id = ? AND day = ?", roomID, day).
		Updates(updates)
	if tx.Error != nil {
		return fmt.Errorf("update inventory day: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d on %s", ErrNotFound, roomID, day)
	}
	return nil
}

// AggregateSum totals stock per room over [from, to). Rooms without any
// record in the range are absent from the result.
func (r *InventoryRepository) AggregateSum(ctx context.Context, roomIDs []int64, from, to calendar.Date) (map[int64]int64, error) {
	out := make(map[int64]int64, len(roomIDs))
	if len(roomIDs) == 0 {
		return out, nil
	}

	type row struct {
		RoomID int64 `gorm:"column:room_id"`
		Total  int64 `gorm:"column:total"`
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.InventoryDay{}).
		Select("room_id, SUM(stock) AS total").
		Where("room_id IN ? AND day >= ? AND day < ?", roomIDs, from, to).
		Group("room_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate stock: %w", err)
	}
	for _, r := range rows {
		out[r.RoomID] = r.Total
	}
	return out, nil
}

func (r *InventoryRepository) DeleteByRoom(ctx context.Context, roomID int64) error {
	return r.db.WithContext(ctx).Where("room_id = ?", roomID).Delete(&domain.InventoryDay{}).Error
}
