package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"
	"hotelbooking/internal/pkg/money"
	"hotelbooking/internal/pkg/validator"
	"hotelbooking/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type Service struct {
	orders OrderRepository
	ledger Ledger
	rooms  RoomRepository
	hotels HotelRepository
	newID  func() string
}

func NewService(orders OrderRepository, ledger Ledger, rooms RoomRepository, hotels HotelRepository) *Service {
	return &Service{
		orders: orders,
		ledger: ledger,
		rooms:  rooms,
		hotels: hotels,
		newID:  func() string { return uuid.New().String() },
	}
}

// Create snapshots the ledger price of every night of the stay into a new
// pending order. Stock is read but never reserved.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if req.RoomCount == 0 {
		req.RoomCount = 1
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	w, err := calendar.ParseStayWindow(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	hotel, err := s.hotels.GetByID(ctx, room.HotelID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if hotel.Status != domain.HotelPublished {
		return nil, ErrNotFound
	}

	nights := w.Dates()
	records, err := s.ledger.Get(ctx, room.ID, nights)
	if err != nil {
		return nil, err
	}

	var missing []calendar.Date
	for _, d := range nights {
		if _, ok := records[d]; !ok {
			missing = append(missing, d)
		}
	}
	if len(missing) > 0 {
		return nil, calendar.NewDateListError(ErrIncompleteInventory, missing)
	}

	cards, err := encodeIDCards(req.IDCards)
	if err != nil {
		return nil, err
	}

	o := &domain.Order{
		ID:             s.newID(),
		UserID:         req.UserID,
		HotelID:        hotel.ID,
		RoomID:         room.ID,
		CheckIn:        w.CheckIn,
		CheckOut:       w.End(),
		Nights:         len(nights),
		RoomCount:      req.RoomCount,
		Discount:       decimal.Zero,
		Status:         domain.OrderPending,
		Cancellable:    room.Cancellable,
		SpecialRequest: req.SpecialRequest,
		IDCards:        cards,
	}
	for _, d := range nights {
		o.Days = append(o.Days, domain.OrderDayDetail{
			OrderID:   o.ID,
			Day:       d,
			UnitPrice: money.Round(records[d].Price),
		})
	}
	reprice(o)

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	log.WithFields(log.Fields{
		"order_id": o.ID,
		"user_id":  o.UserID,
		"room_id":  o.RoomID,
		"nights":   o.Nights,
		"total":    o.TotalPrice.StringFixed(money.Scale),
	}).Info("order created")
	return o, nil
}

// Reconcile writes the guest's latest edits onto a pending order. On any
// other status it does nothing and returns the stored order.
func (s *Service) Reconcile(ctx context.Context, actor Actor, id string, p Patch) (*domain.Order, error) {
	o, err := s.loadOwn(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OrderPending {
		return o, nil
	}

	if err := applyPatch(o, p); err != nil {
		return nil, err
	}

	saved, err := s.orders.SavePending(ctx, o, domain.OrderPending)
	if err != nil {
		return nil, err
	}
	if !saved {
		log.WithField("order_id", id).Info("reconcile skipped, order no longer pending")
		return s.orders.GetByID(ctx, id)
	}
	return o, nil
}

// Pay applies an optional final patch and moves the order to paid in the
// same conditional write.
func (s *Service) Pay(ctx context.Context, actor Actor, id string, p *Patch) (*domain.Order, error) {
	o, err := s.loadOwn(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransition(domain.OrderPaid, o.Cancellable) {
		return nil, ErrInvalidState
	}

	if p != nil {
		if err := applyPatch(o, *p); err != nil {
			return nil, err
		}
	} else {
		reprice(o)
	}

	saved, err := s.orders.SavePending(ctx, o, domain.OrderPaid)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, ErrInvalidState
	}

	s.logTransition(o, domain.OrderPending, domain.OrderPaid)
	return s.orders.GetByID(ctx, id)
}

func (s *Service) Cancel(ctx context.Context, actor Actor, id string) (*domain.Order, error) {
	o, err := s.loadOwn(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, o, domain.OrderCancelled)
}

func (s *Service) CheckIn(ctx context.Context, actor Actor, id string) (*domain.Order, error) {
	o, err := s.loadForMerchant(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, o, domain.OrderCheckedIn)
}

func (s *Service) Complete(ctx context.Context, actor Actor, id string) (*domain.Order, error) {
	o, err := s.loadForMerchant(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, o, domain.OrderCompleted)
}

// Get returns an order to its guest, to the merchant of its hotel, or to an admin.
func (s *Service) Get(ctx context.Context, actor Actor, id string) (*domain.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case actor.Role == domain.RoleAdmin, o.UserID == actor.UserID:
		return o, nil
	case actor.Role == domain.RoleMerchant:
		if err := s.checkHotelOwner(ctx, actor, o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, ErrForbidden
	}
}

func (s *Service) ListMine(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) transition(ctx context.Context, o *domain.Order, to domain.OrderStatus) (*domain.Order, error) {
	from := o.Status
	if !from.CanTransition(to, o.Cancellable) {
		return nil, ErrInvalidState
	}

	ok, err := s.orders.Transition(ctx, o.ID, from, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidState
	}

	s.logTransition(o, from, to)
	return s.orders.GetByID(ctx, o.ID)
}

func (s *Service) logTransition(o *domain.Order, from, to domain.OrderStatus) {
	log.WithFields(log.Fields{
		"order_id": o.ID,
		"from":     from,
		"to":       to,
	}).Info("order status changed")
}

func (s *Service) load(ctx context.Context, id string) (*domain.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return o, nil
}

// loadOwn loads an order the actor placed as a guest.
func (s *Service) loadOwn(ctx context.Context, actor Actor, id string) (*domain.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != actor.UserID && actor.Role != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *Service) loadForMerchant(ctx context.Context, actor Actor, id string) (*domain.Order, error) {
	o, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkHotelOwner(ctx, actor, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) checkHotelOwner(ctx context.Context, actor Actor, o *domain.Order) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	hotel, err := s.hotels.GetByID(ctx, o.HotelID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if hotel.MerchantID != actor.UserID {
		return ErrForbidden
	}
	return nil
}

// applyPatch copies the non-nil fields of p onto o and reprices it.
func applyPatch(o *domain.Order, p Patch) error {
	if errs := validator.Validate(p); errs != nil {
		return fmt.Errorf("%w: %v", ErrValidation, errs)
	}

	if p.SpecialRequest != nil {
		o.SpecialRequest = *p.SpecialRequest
	}
	if p.IDCards != nil {
		cards, err := encodeIDCards(*p.IDCards)
		if err != nil {
			return err
		}
		o.IDCards = cards
	}
	if p.RoomCount != nil {
		o.RoomCount = *p.RoomCount
	}
	if p.Discount != nil {
		if p.Discount.IsNegative() {
			return fmt.Errorf("%w: discount must be >= 0", ErrValidation)
		}
		o.Discount = money.Round(*p.Discount)
	}

	for _, b := range p.Breakfast {
		day, err := calendar.ParseDate(b.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
		found := false
		for i := range o.Days {
			if o.Days[i].Day.Equal(day) {
				o.Days[i].BreakfastCount = b.Count
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s is not a night of this order", ErrValidation, day)
		}
	}

	reprice(o)
	return nil
}

// reprice derives day prices and totals from the stored unit prices.
func reprice(o *domain.Order) {
	count := decimal.NewFromInt(int64(o.RoomCount))
	prices := make([]decimal.Decimal, len(o.Days))
	for i := range o.Days {
		o.Days[i].Price = money.Round(o.Days[i].UnitPrice.Mul(count))
		prices[i] = o.Days[i].Price
	}
	o.TotalPrice = money.Sum(prices...)
	o.RealPay = money.NonNegative(o.TotalPrice.Sub(o.Discount))
}

func encodeIDCards(cards []string) (datatypes.JSON, error) {
	if len(cards) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(cards)
	if err != nil {
		return nil, fmt.Errorf("encode id cards: %w", err)
	}
	return datatypes.JSON(b), nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
