package admin

import (
	"context"
	"errors"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/repository"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrReasonRequired = errors.New("reason is required")
	ErrAlreadyInState = errors.New("hotel already has this status")
)

type Service struct {
	hotels  HotelRepository
	reviews ReviewRepository
}

func NewService(hotels HotelRepository, reviews ReviewRepository) *Service {
	return &Service{hotels: hotels, reviews: reviews}
}

// -------------------- Hotels --------------------

// PendingHotels pages the hotels waiting for moderation.
func (s *Service) PendingHotels(ctx context.Context, page, limit int) ([]domain.Hotel, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	hotels, total, err := s.hotels.ListByStatus(ctx, domain.HotelPending, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return hotels, int(total), nil
}

// ApproveHotel publishes a hotel; from then on it shows up in search.
func (s *Service) ApproveHotel(ctx context.Context, hotelID, adminID int64) (*domain.Hotel, error) {
	return s.setStatus(ctx, hotelID, adminID, domain.HotelPublished, "")
}

// RejectHotel hides a hotel from search. Rejecting a published hotel
// takes it down.
func (s *Service) RejectHotel(ctx context.Context, hotelID, adminID int64, reason string) (*domain.Hotel, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	return s.setStatus(ctx, hotelID, adminID, domain.HotelRejected, reason)
}

func (s *Service) setStatus(ctx context.Context, hotelID, adminID int64, status domain.HotelStatus, reason string) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if h.Status == status {
		return nil, ErrAlreadyInState
	}

	if err := s.hotels.UpdateStatus(ctx, hotelID, status); err != nil {
		return nil, mapNotFound(err)
	}
	h.Status = status

	entry := log.WithFields(log.Fields{"hotel_id": hotelID, "admin_id": adminID, "status": status})
	if reason != "" {
		entry = entry.WithField("reason", reason)
	}
	entry.Info("hotel moderated")
	return h, nil
}

// -------------------- Reviews moderation --------------------

// SetReviewHidden hides or restores a review. Hidden reviews drop out of
// listings and of the hotel's keyword summary.
func (s *Service) SetReviewHidden(ctx context.Context, reviewID int64, hidden bool) error {
	return mapNotFound(s.reviews.SetHidden(ctx, reviewID, hidden))
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
