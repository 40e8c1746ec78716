package inventory

import (
	"context"
	"errors"
	"fmt"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"
	"hotelbooking/internal/pkg/money"
	"hotelbooking/internal/pkg/validator"
	"hotelbooking/internal/repository"

	log "github.com/sirupsen/logrus"
)

// Grant proves that a merchant owns a room of a hotel. Only Authorize
// creates one; every mutation requires it.
type Grant struct {
	merchantID int64
	hotelID    int64
	roomID     int64
}

func (g Grant) RoomID() int64 { return g.roomID }

func (g Grant) valid() bool { return g.merchantID != 0 && g.roomID != 0 }

type Service struct {
	ledger Ledger
	rooms  RoomRepository
	hotels HotelRepository
}

func NewService(ledger Ledger, rooms RoomRepository, hotels HotelRepository) *Service {
	return &Service{ledger: ledger, rooms: rooms, hotels: hotels}
}

// Authorize checks that roomID belongs to hotelID and hotelID to merchantID.
func (s *Service) Authorize(ctx context.Context, merchantID, hotelID, roomID int64) (Grant, error) {
	if merchantID == 0 || hotelID == 0 || roomID == 0 {
		return Grant{}, ErrForbidden
	}
	ok, err := s.rooms.IsOwnedBy(ctx, merchantID, hotelID, roomID)
	if err != nil {
		return Grant{}, err
	}
	if !ok {
		return Grant{}, ErrForbidden
	}
	return Grant{merchantID: merchantID, hotelID: hotelID, roomID: roomID}, nil
}

// ParseBatch validates a request and expands its date range.
func ParseBatch(req BatchRequest) (Batch, error) {
	if errs := validator.Validate(req); errs != nil {
		return Batch{}, fmt.Errorf("%w: %v", ErrValidation, errs)
	}
	if req.Price != nil && req.Price.IsNegative() {
		return Batch{}, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	dates, err := calendar.ExpandStrings(req.StartDate, req.EndDate, req.Weekdays)
	if err != nil {
		return Batch{}, err
	}

	b := Batch{Dates: dates, Stock: req.Stock}
	if req.Price != nil {
		p := money.Round(*req.Price)
		b.Price = &p
	}
	return b, nil
}

// Apply validates, authorizes and dispatches one batch operation.
func (s *Service) Apply(ctx context.Context, op Operation, req BatchRequest) (*BatchResult, error) {
	batch, err := ParseBatch(req)
	if err != nil {
		return nil, err
	}

	grant, err := s.Authorize(ctx, req.MerchantID, req.HotelID, req.RoomID)
	if err != nil {
		return nil, err
	}

	switch op {
	case OpAdd:
		return s.Add(ctx, grant, batch)
	case OpUpdate:
		return s.Update(ctx, grant, batch)
	case OpClear:
		return s.Clear(ctx, grant, batch)
	default:
		return nil, ErrUnknownOperation
	}
}

// Add creates a record for every date. If any date already has one the
// whole batch fails with every such date listed, and nothing is written.
func (s *Service) Add(ctx context.Context, g Grant, b Batch) (*BatchResult, error) {
	if !g.valid() {
		return nil, ErrForbidden
	}
	if b.Price == nil || b.Stock == nil {
		return nil, fmt.Errorf("%w: add requires price and stock", ErrValidation)
	}

	err := s.ledger.Atomic(ctx, func(tx repository.DayStore) error {
		existing, err := tx.Get(ctx, g.roomID, b.Dates)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			dup := make([]calendar.Date, 0, len(existing))
			for d := range existing {
				dup = append(dup, d)
			}
			return calendar.NewDateListError(ErrDuplicateDates, dup)
		}

		for _, d := range b.Dates {
			if err := tx.UpsertIfAbsent(ctx, g.roomID, d, *b.Price, *b.Stock); err != nil {
				if errors.Is(err, repository.ErrConflict) {
					return calendar.NewDateListError(ErrDuplicateDates, []calendar.Date{d})
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.done(g, OpAdd, b.Dates), nil
}

// Update changes the supplied fields on every date. If any date has no
// record the whole batch fails with every missing date listed.
func (s *Service) Update(ctx context.Context, g Grant, b Batch) (*BatchResult, error) {
	if !g.valid() {
		return nil, ErrForbidden
	}
	if b.Price == nil && b.Stock == nil {
		return nil, ErrNoFieldsProvided
	}

	err := s.ledger.Atomic(ctx, func(tx repository.DayStore) error {
		existing, err := tx.Get(ctx, g.roomID, b.Dates)
		if err != nil {
			return err
		}

		var missing []calendar.Date
		for _, d := range b.Dates {
			if _, ok := existing[d]; !ok {
				missing = append(missing, d)
			}
		}
		if len(missing) > 0 {
			return calendar.NewDateListError(ErrMissingDates, missing)
		}

		for _, d := range b.Dates {
			if err := tx.UpdateExisting(ctx, g.roomID, d, b.Price, b.Stock); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return calendar.NewDateListError(ErrMissingDates, []calendar.Date{d})
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.done(g, OpUpdate, b.Dates), nil
}

// Clear sets stock to zero on every date that has a record. Dates without
// one are skipped; prices are left alone.
func (s *Service) Clear(ctx context.Context, g Grant, b Batch) (*BatchResult, error) {
	if !g.valid() {
		return nil, ErrForbidden
	}

	var cleared []calendar.Date
	err := s.ledger.Atomic(ctx, func(tx repository.DayStore) error {
		cleared = cleared[:0]
		existing, err := tx.Get(ctx, g.roomID, b.Dates)
		if err != nil {
			return err
		}

		zero := 0
		for _, d := range b.Dates {
			if _, ok := existing[d]; !ok {
				continue
			}
			if err := tx.UpdateExisting(ctx, g.roomID, d, nil, &zero); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					continue
				}
				return err
			}
			cleared = append(cleared, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.done(g, OpClear, cleared), nil
}

func (s *Service) done(g Grant, op Operation, dates []calendar.Date) *BatchResult {
	log.WithFields(log.Fields{
		"operation":   op,
		"merchant_id": g.merchantID,
		"hotel_id":    g.hotelID,
		"room_id":     g.roomID,
		"affected":    len(dates),
	}).Info("inventory batch committed")

	return &BatchResult{
		Operation: op,
		Affected:  len(dates),
		Dates:     calendar.Strings(dates),
	}
}

// Calendar returns the granted room's records in [from, to).
func (s *Service) Calendar(ctx context.Context, g Grant, from, to calendar.Date) ([]domain.InventoryDay, error) {
	if !g.valid() {
		return nil, ErrForbidden
	}
	if to.Before(from) {
		return nil, calendar.ErrInvalidRange
	}
	return s.ledger.GetRange(ctx, g.roomID, from, to)
}

// StockSummary totals stock per room of a merchant's hotel over [from, to).
// Rooms without records report zero.
func (s *Service) StockSummary(ctx context.Context, merchantID, hotelID int64, from, to calendar.Date) ([]RoomStock, error) {
	if to.Before(from) {
		return nil, calendar.ErrInvalidRange
	}

	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if hotel.MerchantID != merchantID {
		return nil, ErrForbidden
	}

	rooms, err := s.rooms.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}

	totals, err := s.ledger.AggregateSum(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]RoomStock, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomStock{RoomID: r.ID, RoomName: r.Name, TotalStock: totals[r.ID]})
	}
	return out, nil
}
