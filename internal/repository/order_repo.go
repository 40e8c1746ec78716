package repository

import (
	"context"
	"fmt"
	"time"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and its day details in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day ASC") }).
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var out []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}

// SavePending writes the mutable fields of o and its day details, and moves
// the order to status, but only while the stored row is still pending.
// It reports false when the row was no longer pending; nothing is written then.
func (r *OrderRepository) SavePending(ctx context.Context, o *domain.Order, status domain.OrderStatus) (bool, error) {
	saved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updates := map[string]any{
			"room_count":      o.RoomCount,
			"total_price":     o.TotalPrice,
			"discount":        o.Discount,
			"real_pay":        o.RealPay,
			"special_request": o.SpecialRequest,
			"id_cards":        o.IDCards,
			"status":          status,
			"updated_at":      now,
		}
		if status == domain.OrderPaid {
			updates["paid_at"] = now
		}

		res := tx.Model(&domain.Order{}).
			Where("id = ? AND status = ?", o.ID, domain.OrderPending).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("update pending order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}

		for _, d := range o.Days {
			err := tx.Model(&domain.OrderDayDetail{}).
				Where("order_id = ? AND day = ?", o.ID, d.Day).
				Updates(map[string]any{
					"price":           d.Price,
					"breakfast_count": d.BreakfastCount,
				}).Error
			if err != nil {
				return fmt.Errorf("update order day %s: %w", d.Day, err)
			}
		}
		saved = true
		return nil
	})
	return saved, err
}

// Transition moves an order from one status to another with a conditional
// update. It reports false when the stored status was no longer from.
func (r *OrderRepository) Transition(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	now := time.Now().UTC()
	updates := map[string]any{"status": to, "updated_at": now}
	if to == domain.OrderCancelled {
		updates["cancelled_at"] = now
	}

	res := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("transition order: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// HasCompletedStay reports whether the user has a completed order at the hotel.
func (r *OrderRepository) HasCompletedStay(ctx context.Context, userID, hotelID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("user_id = ? AND hotel_id = ? AND status = ?", userID, hotelID, domain.OrderCompleted).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check completed stay: %w", err)
	}
	return n > 0, nil
}
