package repository

import (
	"context"

	"hotelbooking/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

// ListContents returns the texts of visible reviews of a hotel.
func (r *ReviewRepository) ListContents(ctx context.Context, hotelID int64) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("hotel_id = ? AND is_hidden = ?", hotelID, false).
		Order("created_at DESC").
		Pluck("content", &out).Error
	return out, err
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rv, nil
}

// ListByHotel pages the visible reviews of a hotel, newest first.
func (r *ReviewRepository) ListByHotel(ctx context.Context, hotelID int64, limit, offset int) ([]domain.Review, error) {
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND is_hidden = ?", hotelID, false).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *ReviewRepository) SetHidden(ctx context.Context, id int64, hidden bool) error {
	res := r.db.WithContext(ctx).Model(&domain.Review{}).Where("id = ?", id).Update("is_hidden", hidden)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
