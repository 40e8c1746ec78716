package repository

import (
	"context"
	"fmt"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// GetByID loads a hotel with its media in display order.
func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&h, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func (r *HotelRepository) UpdateStatus(ctx context.Context, id int64, status domain.HotelStatus) error {
	tx := r.db.WithContext(ctx).Model(&domain.Hotel{}).Where("id = ?", id).Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *HotelRepository) AddMedia(ctx context.Context, m *domain.HotelMedia) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// CountHigherScored counts other published hotels with a strictly higher
// score; an empty city counts across all cities.
func (r *HotelRepository) CountHigherScored(ctx context.Context, h *domain.Hotel, city string) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Hotel{}).
		Where("status = ? AND id <> ? AND score > ?", domain.HotelPublished, h.ID, h.Score)
	if city != "" {
		q = q.Where("city = ?", city)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count higher scored hotels: %w", err)
	}
	return n, nil
}

// ListByIDs loads hotels with their media; missing ids are skipped.
func (r *HotelRepository) ListByIDs(ctx context.Context, ids []int64) ([]domain.Hotel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []domain.Hotel
	err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("id IN ?", ids).
		Find(&out).Error
	return out, err
}

func (r *HotelRepository) ListByMerchant(ctx context.Context, merchantID int64) ([]domain.Hotel, error) {
	var out []domain.Hotel
	err := r.db.WithContext(ctx).
		Preload("Media", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("merchant_id = ?", merchantID).
		Order("id").
		Find(&out).Error
	return out, err
}

// ListByStatus pages hotels in a moderation status, oldest first, and
// returns the total count alongside.
func (r *HotelRepository) ListByStatus(ctx context.Context, status domain.HotelStatus, limit, offset int) ([]domain.Hotel, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Hotel{}).Where("status = ?", status).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count hotels: %w", err)
	}

	var out []domain.Hotel
	err := q.Order("created_at ASC, id ASC").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}
