package repository

import (
	"context"
	"fmt"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

func (r *RoomRepository) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("id").Find(&rooms).Error
	return rooms, err
}

// IsOwnedBy reports whether the room belongs to the hotel and the hotel to
// the merchant.
func (r *RoomRepository) IsOwnedBy(ctx context.Context, merchantID, hotelID, roomID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("rooms").
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("rooms.id = ? AND rooms.hotel_id = ? AND hotels.merchant_id = ?", roomID, hotelID, merchantID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check room ownership: %w", err)
	}
	return n > 0, nil
}

// Delete removes a room together with its inventory days.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := NewInventoryRepository(tx).DeleteByRoom(ctx, id); err != nil {
			return err
		}
		res := tx.Delete(&domain.Room{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *RoomRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rooms []domain.Room
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rooms).Error
	return rooms, err
}
