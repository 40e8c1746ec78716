package order

import (
	"context"
	"errors"
	"testing"

	"hotelbooking/internal/database"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/pkg/calendar"
	"hotelbooking/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	guestID    int64 = 11
	merchantID int64 = 22
)

var (
	guest    = Actor{UserID: guestID, Role: domain.RoleGuest}
	merchant = Actor{UserID: merchantID, Role: domain.RoleMerchant}
)

type env struct {
	db     *gorm.DB
	svc    *Service
	orders *repository.OrderRepository
	hotel  *domain.Hotel
	room   *domain.Room
}

func newEnv(t *testing.T, cancellable bool) *env {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)

	h := &domain.Hotel{MerchantID: merchantID, Name: "Grand", City: "Astana", Status: domain.HotelPublished}
	require.NoError(t, db.Create(h).Error)
	r := &domain.Room{HotelID: h.ID, Name: "King", RoomType: domain.RoomDouble, Price: decimal.NewFromInt(100), OriginalPrice: decimal.NewFromInt(120), Cancellable: cancellable}
	require.NoError(t, db.Create(r).Error)

	ledger := repository.NewInventoryRepository(db)
	ctx := context.Background()
	require.NoError(t, ledger.UpsertIfAbsent(ctx, r.ID, date("2025-06-01"), decimal.RequireFromString("100.50"), 3))
	require.NoError(t, ledger.UpsertIfAbsent(ctx, r.ID, date("2025-06-02"), decimal.NewFromInt(120), 0))

	orders := repository.NewOrderRepository(db)
	svc := NewService(orders, ledger, repository.NewRoomRepository(db), repository.NewHotelRepository(db))
	return &env{db: db, svc: svc, orders: orders, hotel: h, room: r}
}

func date(s string) calendar.Date {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (e *env) create(t *testing.T, roomCount int) *domain.Order {
	t.Helper()
	o, err := e.svc.Create(context.Background(), CreateOrderRequest{
		UserID:    guestID,
		RoomID:    e.room.ID,
		CheckIn:   "2025-06-01",
		CheckOut:  "2025-06-03",
		RoomCount: roomCount,
		IDCards:   []string{"A123"},
	})
	require.NoError(t, err)
	return o
}

func TestCreate_SnapshotsLedgerPrices(t *testing.T) {
	e := newEnv(t, true)

	o := e.create(t, 2)

	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Len(t, o.ID, 36)
	assert.Equal(t, 2, o.Nights)
	assert.Equal(t, "2025-06-03", o.CheckOut.String())
	assert.True(t, o.Cancellable)
	require.Len(t, o.Days, 2)
	assert.Equal(t, "201.00", o.Days[0].Price.StringFixed(2))
	assert.Equal(t, "240.00", o.Days[1].Price.StringFixed(2))
	assert.Equal(t, 0, o.Days[0].BreakfastCount)
	assert.Equal(t, "441.00", o.TotalPrice.StringFixed(2))
	assert.True(t, o.RealPay.Equal(o.TotalPrice))

	stored, err := e.orders.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, d := range stored.Days {
		sum = sum.Add(d.Price)
	}
	assert.True(t, sum.Equal(stored.TotalPrice))
	assert.JSONEq(t, `["A123"]`, string(stored.IDCards))

	var stock int
	require.NoError(t, e.db.Model(&domain.InventoryDay{}).Select("stock").
		Where("room_id = ? AND day = ?", e.room.ID, date("2025-06-01")).Scan(&stock).Error)
	assert.Equal(t, 3, stock, "creating an order does not reserve stock")
}

func TestCreate_IncompleteInventoryListsEveryGap(t *testing.T) {
	e := newEnv(t, false)

	_, err := e.svc.Create(context.Background(), CreateOrderRequest{
		UserID: guestID, RoomID: e.room.ID, CheckIn: "2025-06-01", CheckOut: "2025-06-05",
	})

	assert.ErrorIs(t, err, ErrIncompleteInventory)
	var dle *calendar.DateListError
	require.True(t, errors.As(err, &dle))
	assert.Equal(t, []string{"2025-06-03", "2025-06-04"}, dle.Dates())

	var n int64
	require.NoError(t, e.db.Model(&domain.Order{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreate_Validation(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()

	_, err := e.svc.Create(ctx, CreateOrderRequest{UserID: guestID, RoomID: e.room.ID, CheckIn: "2025-06-03", CheckOut: "2025-06-01"})
	assert.ErrorIs(t, err, calendar.ErrInvalidRange)

	_, err = e.svc.Create(ctx, CreateOrderRequest{UserID: guestID, RoomID: e.room.ID, CheckIn: "2025-06-01", CheckOut: "2025-06-02", RoomCount: -1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.svc.Create(ctx, CreateOrderRequest{UserID: guestID, RoomID: 999, CheckIn: "2025-06-01", CheckOut: "2025-06-02"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReconcile_RepricesPendingOrder(t *testing.T) {
	e := newEnv(t, false)
	o := e.create(t, 1)
	three := 3
	note := "late arrival"
	discount := decimal.NewFromInt(50)

	got, err := e.svc.Reconcile(context.Background(), guest, o.ID, Patch{
		RoomCount:      &three,
		SpecialRequest: &note,
		Discount:       &discount,
		Breakfast:      []BreakfastPatch{{Date: "2025-06-02", Count: 2}},
	})

	require.NoError(t, err)
	assert.Equal(t, "661.50", got.TotalPrice.StringFixed(2))
	assert.Equal(t, "611.50", got.RealPay.StringFixed(2))

	stored, err := e.orders.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.RoomCount)
	assert.Equal(t, "late arrival", stored.SpecialRequest)
	assert.Equal(t, 2, stored.Days[1].BreakfastCount)
	assert.Equal(t, "360.00", stored.Days[1].Price.StringFixed(2))
	assert.Equal(t, "611.50", stored.RealPay.StringFixed(2))
}

func TestReconcile_DiscountNeverMakesRealPayNegative(t *testing.T) {
	e := newEnv(t, false)
	o := e.create(t, 1)
	big := decimal.NewFromInt(10000)

	got, err := e.svc.Reconcile(context.Background(), guest, o.ID, Patch{Discount: &big})

	require.NoError(t, err)
	assert.True(t, got.RealPay.IsZero())
}

func TestReconcile_AfterPayIsNoOp(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	o := e.create(t, 1)

	paid, err := e.svc.Pay(ctx, guest, o.ID, nil)
	require.NoError(t, err)
	require.Equal(t, domain.OrderPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)

	five := 5
	got, err := e.svc.Reconcile(ctx, guest, o.ID, Patch{RoomCount: &five})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, got.Status)
	assert.Equal(t, 1, got.RoomCount)
	assert.True(t, got.TotalPrice.Equal(paid.TotalPrice))
}

func TestPay_WritesFinalPatch(t *testing.T) {
	e := newEnv(t, false)
	o := e.create(t, 1)
	two := 2

	got, err := e.svc.Pay(context.Background(), guest, o.ID, &Patch{RoomCount: &two})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, got.Status)
	assert.Equal(t, "441.00", got.TotalPrice.StringFixed(2))
	assert.Equal(t, "441.00", got.RealPay.StringFixed(2))

	_, err = e.svc.Pay(context.Background(), guest, o.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("full stay", func(t *testing.T) {
		e := newEnv(t, false)
		o := e.create(t, 1)

		_, err := e.svc.CheckIn(ctx, merchant, o.ID)
		assert.ErrorIs(t, err, ErrInvalidState, "pending cannot check in")

		_, err = e.svc.Pay(ctx, guest, o.ID, nil)
		require.NoError(t, err)
		got, err := e.svc.CheckIn(ctx, merchant, o.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderCheckedIn, got.Status)

		_, err = e.svc.Cancel(ctx, guest, o.ID)
		assert.ErrorIs(t, err, ErrInvalidState)

		got, err = e.svc.Complete(ctx, merchant, o.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderCompleted, got.Status)

		_, err = e.svc.Complete(ctx, merchant, o.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("cancel pending", func(t *testing.T) {
		e := newEnv(t, false)
		o := e.create(t, 1)

		got, err := e.svc.Cancel(ctx, guest, o.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderCancelled, got.Status)
		assert.NotNil(t, got.CancelledAt)

		_, err = e.svc.Pay(ctx, guest, o.ID, nil)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("paid needs cancellable", func(t *testing.T) {
		e := newEnv(t, false)
		o := e.create(t, 1)
		_, err := e.svc.Pay(ctx, guest, o.ID, nil)
		require.NoError(t, err)

		_, err = e.svc.Cancel(ctx, guest, o.ID)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("paid and cancellable", func(t *testing.T) {
		e := newEnv(t, true)
		o := e.create(t, 1)
		_, err := e.svc.Pay(ctx, guest, o.ID, nil)
		require.NoError(t, err)

		got, err := e.svc.Cancel(ctx, guest, o.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderCancelled, got.Status)
	})
}

func TestOwnership(t *testing.T) {
	e := newEnv(t, false)
	ctx := context.Background()
	o := e.create(t, 1)
	stranger := Actor{UserID: 99, Role: domain.RoleGuest}
	otherMerchant := Actor{UserID: 98, Role: domain.RoleMerchant}

	_, err := e.svc.Get(ctx, stranger, o.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = e.svc.Pay(ctx, stranger, o.ID, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = e.svc.CheckIn(ctx, otherMerchant, o.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := e.svc.Get(ctx, merchant, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = e.svc.Get(ctx, guest, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	mine, err := e.svc.ListMine(ctx, guestID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := e.svc.ListMine(ctx, 99, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) SavePending(ctx context.Context, o *domain.Order, status domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, o, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Transition(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

const raceID = "9b2f6c1e-3d4a-4f7e-8a61-0c5d2e9f1b30"

func pendingOrder() *domain.Order {
	return &domain.Order{
		ID: raceID, UserID: guestID, RoomCount: 1, Status: domain.OrderPending,
		Days: []domain.OrderDayDetail{{Day: date("2025-06-01"), UnitPrice: decimal.NewFromInt(100)}},
	}
}

// The order is read as pending but payment commits before the write lands.
func TestReconcile_LosesRaceToPay(t *testing.T) {
	repo := new(MockOrderRepository)
	paid := pendingOrder()
	paid.Status = domain.OrderPaid
	repo.On("GetByID", mock.Anything, raceID).Return(pendingOrder(), nil).Once()
	repo.On("SavePending", mock.Anything, mock.Anything, domain.OrderPending).Return(false, nil)
	repo.On("GetByID", mock.Anything, raceID).Return(paid, nil).Once()
	svc := NewService(repo, nil, nil, nil)

	two := 2
	got, err := svc.Reconcile(context.Background(), guest, raceID, Patch{RoomCount: &two})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, got.Status)
	repo.AssertExpectations(t)
}

func TestPay_LosesRace(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("GetByID", mock.Anything, raceID).Return(pendingOrder(), nil)
	repo.On("SavePending", mock.Anything, mock.Anything, domain.OrderPaid).Return(false, nil)
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.Pay(context.Background(), guest, raceID, nil)

	assert.ErrorIs(t, err, ErrInvalidState)
	repo.AssertExpectations(t)
}

func TestCancel_StaleStatus(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("GetByID", mock.Anything, raceID).Return(pendingOrder(), nil)
	repo.On("Transition", mock.Anything, raceID, domain.OrderPending, domain.OrderCancelled).Return(false, nil)
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), guest, raceID)

	assert.ErrorIs(t, err, ErrInvalidState)
	repo.AssertExpectations(t)
}
