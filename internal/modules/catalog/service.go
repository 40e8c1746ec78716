package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/money"
	"hotelbooking/internal/pkg/validator"
	"hotelbooking/internal/repository"

	log "github.com/sirupsen/logrus"
)

// Service manages a merchant's hotels and rooms. New hotels start in
// moderation and only become searchable once an admin publishes them.
type Service struct {
	hotels HotelRepository
	rooms  RoomRepository
}

func NewService(hotels HotelRepository, rooms RoomRepository) *Service {
	return &Service{hotels: hotels, rooms: rooms}
}

/* ---------- HOTEL ---------- */

func (s *Service) CreateHotel(ctx context.Context, req CreateHotelRequest) (*domain.Hotel, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	h := &domain.Hotel{
		MerchantID:  req.MerchantID,
		Name:        strings.TrimSpace(req.Name),
		City:        strings.TrimSpace(req.City),
		Address:     req.Address,
		Description: req.Description,
		StarRating:  req.StarRating,
		Status:      domain.HotelPending,
	}
	for i, url := range req.MediaURLs {
		h.Media = append(h.Media, domain.HotelMedia{URL: url, SortOrder: i})
	}

	if err := s.hotels.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("create hotel: %w", err)
	}

	log.WithFields(log.Fields{"hotel_id": h.ID, "merchant_id": h.MerchantID}).Info("hotel submitted for moderation")
	return h, nil
}

func (s *Service) ListMyHotels(ctx context.Context, merchantID int64) ([]domain.Hotel, error) {
	return s.hotels.ListByMerchant(ctx, merchantID)
}

// HotelRooms lists the rooms of a hotel owned by the merchant.
func (s *Service) HotelRooms(ctx context.Context, merchantID, hotelID int64) ([]domain.Room, error) {
	if _, err := s.ownedHotel(ctx, merchantID, hotelID); err != nil {
		return nil, err
	}
	return s.rooms.ListByHotel(ctx, hotelID)
}

/* ---------- ROOMS ---------- */

func (s *Service) CreateRoom(ctx context.Context, merchantID, hotelID int64, req CreateRoomRequest) (*domain.Room, error) {
	if _, err := s.ownedHotel(ctx, merchantID, hotelID); err != nil {
		return nil, err
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	roomType, err := domain.ParseRoomType(req.RoomType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}

	original := req.Price
	if req.OriginalPrice != nil {
		if req.OriginalPrice.LessThan(req.Price) {
			return nil, fmt.Errorf("%w: original_price is below price", ErrValidation)
		}
		original = *req.OriginalPrice
	}

	room := &domain.Room{
		HotelID:       hotelID,
		Name:          strings.TrimSpace(req.Name),
		RoomType:      roomType,
		Price:         money.Round(req.Price),
		OriginalPrice: money.Round(original),
		Cancellable:   req.Cancellable,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// DeleteRoom removes the room and its whole inventory calendar.
func (s *Service) DeleteRoom(ctx context.Context, merchantID, hotelID, roomID int64) error {
	ok, err := s.rooms.IsOwnedBy(ctx, merchantID, hotelID, roomID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	if err := s.rooms.Delete(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete room: %w", err)
	}

	log.WithFields(log.Fields{"hotel_id": hotelID, "room_id": roomID}).Info("room deleted")
	return nil
}

func (s *Service) ownedHotel(ctx context.Context, merchantID, hotelID int64) (*domain.Hotel, error) {
	h, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if h.MerchantID != merchantID {
		return nil, ErrForbidden
	}
	return h, nil
}
