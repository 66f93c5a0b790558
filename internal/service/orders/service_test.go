package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baydesk/BayBookingService/internal/domain"
	orderRepo "github.com/baydesk/BayBookingService/internal/infra/storage/order"
	paymentRepo "github.com/baydesk/BayBookingService/internal/infra/storage/payment"
	"github.com/baydesk/BayBookingService/internal/service/orders/models"
)

type mockBookingRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.Booking, error)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockOrderRepo struct {
	CreateFunc        func(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
	GetByIDFunc       func(ctx context.Context, id string) (*domain.OrderItem, error)
	ListBySeatFunc    func(ctx context.Context, bookingID string, seatIndex int) ([]*domain.OrderItem, error)
	ListByBookingFunc func(ctx context.Context, bookingID string) ([]*domain.OrderItem, error)
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *mockOrderRepo) Create(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, item)
	}
	return item, nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*domain.OrderItem, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, orderRepo.ErrOrderItemNotFound
}

func (m *mockOrderRepo) ListBySeat(ctx context.Context, bookingID string, seatIndex int) ([]*domain.OrderItem, error) {
	if m.ListBySeatFunc != nil {
		return m.ListBySeatFunc(ctx, bookingID, seatIndex)
	}
	return []*domain.OrderItem{}, nil
}

func (m *mockOrderRepo) ListByBooking(ctx context.Context, bookingID string) ([]*domain.OrderItem, error) {
	if m.ListByBookingFunc != nil {
		return m.ListByBookingFunc(ctx, bookingID)
	}
	return []*domain.OrderItem{}, nil
}

func (m *mockOrderRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockPaymentRepo struct {
	GetBySeatFunc func(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error)
}

func (m *mockPaymentRepo) GetBySeat(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error) {
	if m.GetBySeatFunc != nil {
		return m.GetBySeatFunc(ctx, bookingID, seatIndex)
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

type mockMenuRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*domain.MenuItem, error)
}

func (m *mockMenuRepo) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockCouponRepo struct {
	GetByCodeFunc func(ctx context.Context, code string) (*domain.Coupon, error)
}

func (m *mockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	return m.GetByCodeFunc(ctx, code)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func confirmedBooking() *domain.Booking {
	start := time.Date(2025, 7, 15, 14, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:         "b1",
		ResourceID: "bay1",
		Players:    1,
		BasePrice:  50,
		TaxRate:    0.13,
		Status:     domain.StatusConfirmed,
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
	}
}

func newTestService(b *mockBookingRepo, o *mockOrderRepo, p *mockPaymentRepo, m *mockMenuRepo, c *mockCouponRepo) *Service {
	if b == nil {
		b = &mockBookingRepo{GetByIDFunc: func(ctx context.Context, id string) (*domain.Booking, error) {
			return confirmedBooking(), nil
		}}
	}
	if o == nil {
		o = &mockOrderRepo{}
	}
	if p == nil {
		p = &mockPaymentRepo{}
	}
	if m == nil {
		m = &mockMenuRepo{GetByIDFunc: func(ctx context.Context, id string) (*domain.MenuItem, error) {
			return &domain.MenuItem{ID: id, Name: "Wings", Price: 12.99, IsActive: true}, nil
		}}
	}
	if c == nil {
		c = &mockCouponRepo{GetByCodeFunc: func(ctx context.Context, code string) (*domain.Coupon, error) {
			return &domain.Coupon{Code: code, DiscountAmount: 5, Status: domain.CouponRedeemed}, nil
		}}
	}
	return NewService(b, o, p, m, c, fakeTxManager{}, nopLogger{})
}

func TestAddItemMenuPricing(t *testing.T) {
	menuID := "m1"
	svc := newTestService(nil, nil, nil, nil, nil)

	item, err := svc.AddItem(context.Background(), "b1", &models.AddItemRequest{
		SeatIndex:  1,
		MenuItemID: &menuID,
		Quantity:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, 12.99, item.UnitPrice)
	assert.Equal(t, 25.98, item.TotalPrice)
	assert.Equal(t, &menuID, item.MenuItemID)
}

func TestAddItemCustomPricing(t *testing.T) {
	name := "Birthday cake"
	price := 30.0
	svc := newTestService(nil, nil, nil, nil, nil)

	item, err := svc.AddItem(context.Background(), "b1", &models.AddItemRequest{
		SeatIndex:   1,
		CustomName:  &name,
		CustomPrice: &price,
		Quantity:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, item.UnitPrice)
	assert.Equal(t, 30.0, item.TotalPrice)
}

func TestAddItemClosedBooking(t *testing.T) {
	menuID := "m1"
	b := &mockBookingRepo{GetByIDFunc: func(ctx context.Context, id string) (*domain.Booking, error) {
		booking := confirmedBooking()
		booking.Status = domain.StatusCompleted
		return booking, nil
	}}
	svc := newTestService(b, nil, nil, nil, nil)

	_, err := svc.AddItem(context.Background(), "b1", &models.AddItemRequest{
		SeatIndex:  1,
		MenuItemID: &menuID,
		Quantity:   1,
	})
	assert.ErrorIs(t, err, ErrBookingClosed)
}

func TestAddItemSeatOutOfRange(t *testing.T) {
	menuID := "m1"
	svc := newTestService(nil, nil, nil, nil, nil)

	_, err := svc.AddItem(context.Background(), "b1", &models.AddItemRequest{
		SeatIndex:  3, // booking has one player
		MenuItemID: &menuID,
		Quantity:   1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddItemRejectsMenuAndCustomTogether(t *testing.T) {
	menuID := "m1"
	name := "Nachos"
	price := 9.99
	svc := newTestService(nil, nil, nil, nil, nil)

	_, err := svc.AddItem(context.Background(), "b1", &models.AddItemRequest{
		SeatIndex:   1,
		MenuItemID:  &menuID,
		CustomName:  &name,
		CustomPrice: &price,
		Quantity:    1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveItemSettledSeatIsFrozen(t *testing.T) {
	o := &mockOrderRepo{GetByIDFunc: func(ctx context.Context, id string) (*domain.OrderItem, error) {
		return &domain.OrderItem{ID: id, BookingID: "b1", SeatIndex: 1}, nil
	}}
	p := &mockPaymentRepo{GetBySeatFunc: func(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error) {
		return &domain.Payment{ID: "p1", BookingID: bookingID, SeatIndex: seatIndex}, nil
	}}
	svc := newTestService(nil, o, p, nil, nil)

	err := svc.RemoveItem(context.Background(), "b1", "i1")
	assert.ErrorIs(t, err, ErrSeatAlreadySettled)
}

func TestRemoveItemWrongBooking(t *testing.T) {
	o := &mockOrderRepo{GetByIDFunc: func(ctx context.Context, id string) (*domain.OrderItem, error) {
		return &domain.OrderItem{ID: id, BookingID: "other", SeatIndex: 1}, nil
	}}
	svc := newTestService(nil, o, nil, nil, nil)

	err := svc.RemoveItem(context.Background(), "b1", "i1")
	assert.ErrorIs(t, err, ErrOrderItemNotFound)
}

func TestRemoveItemUnsettledSeat(t *testing.T) {
	deleted := false
	o := &mockOrderRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*domain.OrderItem, error) {
			return &domain.OrderItem{ID: id, BookingID: "b1", SeatIndex: 1}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(nil, o, nil, nil, nil)

	require.NoError(t, svc.RemoveItem(context.Background(), "b1", "i1"))
	assert.True(t, deleted)
}

func TestComputeSeatInvoice(t *testing.T) {
	o := &mockOrderRepo{ListBySeatFunc: func(ctx context.Context, bookingID string, seatIndex int) ([]*domain.OrderItem, error) {
		return []*domain.OrderItem{
			{ID: "i1", BookingID: bookingID, SeatIndex: seatIndex, Quantity: 1, UnitPrice: 12.99, TotalPrice: 12.99},
		}, nil
	}}
	svc := newTestService(nil, o, nil, nil, nil)

	inv, err := svc.ComputeSeatInvoice(context.Background(), "b1", 1)
	require.NoError(t, err)

	assert.Equal(t, 50.0, inv.BaseShare)
	assert.Equal(t, 62.99, inv.Subtotal)
	assert.Equal(t, 8.19, inv.Tax)
	assert.Equal(t, 71.18, inv.AmountDue())
	assert.False(t, inv.Paid)
}

func TestComputeSeatInvoiceEvenBaseSplit(t *testing.T) {
	b := &mockBookingRepo{GetByIDFunc: func(ctx context.Context, id string) (*domain.Booking, error) {
		booking := confirmedBooking()
		booking.Players = 4
		booking.BasePrice = 100
		return booking, nil
	}}
	svc := newTestService(b, nil, nil, nil, nil)

	inv, err := svc.ComputeSeatInvoice(context.Background(), "b1", 3)
	require.NoError(t, err)

	assert.Equal(t, 25.0, inv.BaseShare)
	assert.Equal(t, 25.0, inv.Subtotal)
	assert.Equal(t, 3.25, inv.Tax)
	assert.Equal(t, 28.25, inv.AmountDue())
}

func TestComputeSeatInvoicePaidSeat(t *testing.T) {
	code := "SAVE5"
	p := &mockPaymentRepo{GetBySeatFunc: func(ctx context.Context, bookingID string, seatIndex int) (*domain.Payment, error) {
		return &domain.Payment{
			ID: "p1", BookingID: bookingID, SeatIndex: seatIndex,
			Amount: 51.5, Tip: 8, CouponCode: &code,
		}, nil
	}}
	svc := newTestService(nil, nil, p, nil, nil)

	inv, err := svc.ComputeSeatInvoice(context.Background(), "b1", 1)
	require.NoError(t, err)

	assert.True(t, inv.Paid)
	assert.Equal(t, 8.0, inv.Tip)
	assert.Equal(t, 5.0, inv.Discount)
	// 50.00 + 6.50 tax - 5.00 discount + 8.00 tip
	assert.Equal(t, 59.5, inv.Total)
}

func TestComputeSeatInvoiceSeatOutOfRange(t *testing.T) {
	svc := newTestService(nil, nil, nil, nil, nil)

	_, err := svc.ComputeSeatInvoice(context.Background(), "b1", 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ComputeSeatInvoice(context.Background(), "b1", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
