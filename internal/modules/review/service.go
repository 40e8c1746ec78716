package review

import (
	"context"
	"errors"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/validator"
	"hotelbooking/internal/repository"
)

type Repository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByHotel(ctx context.Context, hotelID int64, limit, offset int) ([]domain.Review, error)
}

type StayGate interface {
	HasCompletedStay(ctx context.Context, userID, hotelID int64) (bool, error)
}

type HotelGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Hotel, error)
}

type Service struct {
	reviews Repository
	stays   StayGate
	hotels  HotelGate
}

func NewService(reviews Repository, stays StayGate, hotels HotelGate) *Service {
	return &Service{reviews: reviews, stays: stays, hotels: hotels}
}

// Create stores a review; only guests with a completed stay at the hotel
// may write one.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if userID <= 0 || validator.Validate(req) != nil {
		return nil, ErrInvalidRequest
	}

	ok, err := s.stays.HasCompletedStay(ctx, userID, req.HotelID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrReviewNotAllowed
	}

	rv := &domain.Review{
		HotelID: req.HotelID,
		UserID:  userID,
		Rating:  req.Rating,
		Content: strings.TrimSpace(req.Content),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) GetByHotel(ctx context.Context, hotelID int64, limit, offset int) ([]domain.Review, error) {
	if hotelID <= 0 {
		return nil, ErrInvalidRequest
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	h, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if h.Status != domain.HotelPublished {
		return nil, ErrNotFound
	}

	return s.reviews.ListByHotel(ctx, hotelID, limit, offset)
}
