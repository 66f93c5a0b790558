package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/baydesk/BayBookingService/internal/domain"
	bookingRepo "github.com/baydesk/BayBookingService/internal/infra/storage/booking"
	menuRepo "github.com/baydesk/BayBookingService/internal/infra/storage/menu"
	orderRepo "github.com/baydesk/BayBookingService/internal/infra/storage/order"
	paymentRepo "github.com/baydesk/BayBookingService/internal/infra/storage/payment"
	"github.com/baydesk/BayBookingService/internal/service/orders/models"
)

// Service manages per-seat order ledgers and derives seat invoices.
type Service struct {
	bookingRepo BookingRepository
	orderRepo   OrderRepository
	paymentRepo PaymentRepository
	menuRepo    MenuRepository
	couponRepo  CouponRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService creates an order ledger service.
func NewService(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	paymentRepo PaymentRepository,
	menuRepo MenuRepository,
	couponRepo CouponRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		menuRepo:    menuRepo,
		couponRepo:  couponRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// AddItem appends one line to a seat's ledger. Menu lines are priced from
// the menu at creation time; custom lines carry their own price. The stored
// unit price never changes afterwards.
func (s *Service) AddItem(ctx context.Context, bookingID string, req *models.AddItemRequest) (*models.OrderItemResponse, error) {
	s.logger.Info("AddItem: booking=%s seat=%d", bookingID, req.SeatIndex)

	if err := validateAddItem(req); err != nil {
		s.logger.Warn("AddItem: invalid request for booking=%s: %v", bookingID, err)
		return nil, err
	}

	var created *domain.OrderItem
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: AddItem - loading booking: %v", ErrInternal, err)
		}

		if !booking.AcceptsOrders() {
			s.logger.Warn("AddItem: booking=%s is closed, status=%s", bookingID, booking.Status)
			return ErrBookingClosed
		}

		if req.SeatIndex > booking.Players {
			return fmt.Errorf("%w: seat index %d exceeds player count %d", ErrInvalidInput, req.SeatIndex, booking.Players)
		}

		item := &domain.OrderItem{
			ID:        uuid.NewString(),
			BookingID: bookingID,
			SeatIndex: req.SeatIndex,
			Quantity:  req.Quantity,
		}

		if req.MenuItemID != nil {
			menuItem, err := s.menuRepo.GetByID(ctx, *req.MenuItemID)
			if err != nil {
				if errors.Is(err, menuRepo.ErrMenuItemNotFound) {
					return ErrMenuItemNotFound
				}
				return fmt.Errorf("%w: AddItem - loading menu item: %v", ErrInternal, err)
			}
			if !menuItem.IsActive {
				return ErrMenuItemNotFound
			}
			item.MenuItemID = req.MenuItemID
			item.UnitPrice = menuItem.Price
		} else {
			item.CustomName = req.CustomName
			item.CustomPrice = req.CustomPrice
			item.UnitPrice = *req.CustomPrice
		}

		item.TotalPrice = domain.RoundCents(item.UnitPrice * float64(item.Quantity))

		created, err = s.orderRepo.Create(ctx, item)
		if err != nil {
			return fmt.Errorf("%w: AddItem - creating order item: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("AddItem: created item id=%s booking=%s seat=%d total=%.2f",
		created.ID, bookingID, created.SeatIndex, created.TotalPrice)
	return models.FromDomainOrderItem(created), nil
}

// RemoveItem deletes a ledger line. Lines on a settled seat are frozen: the
// applied payment must be voided first.
func (s *Service) RemoveItem(ctx context.Context, bookingID, itemID string) error {
	s.logger.Info("RemoveItem: booking=%s item=%s", bookingID, itemID)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		item, err := s.orderRepo.GetByID(ctx, itemID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderItemNotFound) {
				return ErrOrderItemNotFound
			}
			return fmt.Errorf("%w: RemoveItem - loading order item: %v", ErrInternal, err)
		}
		if item.BookingID != bookingID {
			return ErrOrderItemNotFound
		}

		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: RemoveItem - loading booking: %v", ErrInternal, err)
		}
		if !booking.AcceptsOrders() {
			return ErrBookingClosed
		}

		_, err = s.paymentRepo.GetBySeat(ctx, bookingID, item.SeatIndex)
		if err == nil {
			s.logger.Warn("RemoveItem: booking=%s seat=%d already settled", bookingID, item.SeatIndex)
			return ErrSeatAlreadySettled
		}
		if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return fmt.Errorf("%w: RemoveItem - checking settlement: %v", ErrInternal, err)
		}

		if err := s.orderRepo.Delete(ctx, itemID); err != nil {
			return fmt.Errorf("%w: RemoveItem - deleting order item: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("RemoveItem: deleted item id=%s", itemID)
	return nil
}

// ListBookingItems returns every ledger line of a booking.
func (s *Service) ListBookingItems(ctx context.Context, bookingID string) ([]*models.OrderItemResponse, error) {
	items, err := s.orderRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListBookingItems: repository error for booking=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListBookingItems - repository error: %v", ErrInternal, err)
	}

	out := make([]*models.OrderItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, models.FromDomainOrderItem(item))
	}
	return out, nil
}

// GetSeatInvoice derives a seat's current bill.
func (s *Service) GetSeatInvoice(ctx context.Context, bookingID string, seatIndex int) (*models.SeatInvoiceResponse, error) {
	inv, err := s.ComputeSeatInvoice(ctx, bookingID, seatIndex)
	if err != nil {
		return nil, err
	}
	return models.FromDomainInvoice(inv), nil
}

// ComputeSeatInvoice recomputes a seat's bill from its ledger lines and the
// booking's base price share. Nothing is cached: the result always reflects
// current storage state, inside a transaction included.
func (s *Service) ComputeSeatInvoice(ctx context.Context, bookingID string, seatIndex int) (*domain.SeatInvoice, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: ComputeSeatInvoice - loading booking: %v", ErrInternal, err)
	}

	if seatIndex < domain.MinSeatIndex || seatIndex > booking.Players {
		return nil, fmt.Errorf("%w: seat index %d out of range 1..%d", ErrInvalidInput, seatIndex, booking.Players)
	}

	items, err := s.orderRepo.ListBySeat(ctx, bookingID, seatIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: ComputeSeatInvoice - loading order items: %v", ErrInternal, err)
	}

	inv := &domain.SeatInvoice{
		BookingID: bookingID,
		SeatIndex: seatIndex,
		Items:     items,
		BaseShare: domain.RoundCents(booking.BaseShare()),
		TaxRate:   booking.TaxRate,
	}

	subtotal := inv.BaseShare
	for _, item := range items {
		subtotal += item.TotalPrice
	}
	inv.Subtotal = domain.RoundCents(subtotal)
	inv.Tax = domain.RoundCents(inv.Subtotal * inv.TaxRate)

	payment, err := s.paymentRepo.GetBySeat(ctx, bookingID, seatIndex)
	switch {
	case err == nil:
		inv.Paid = true
		inv.Tip = payment.Tip
		if payment.CouponCode != nil {
			coupon, err := s.couponRepo.GetByCode(ctx, *payment.CouponCode)
			if err != nil {
				return nil, fmt.Errorf("%w: ComputeSeatInvoice - loading coupon: %v", ErrInternal, err)
			}
			inv.Discount = coupon.DiscountAmount
		}
	case errors.Is(err, paymentRepo.ErrPaymentNotFound):
		// Seat not settled yet.
	default:
		return nil, fmt.Errorf("%w: ComputeSeatInvoice - loading payment: %v", ErrInternal, err)
	}

	inv.Total = domain.RoundCents(inv.Subtotal + inv.Tax - inv.Discount + inv.Tip)
	return inv, nil
}

func validateAddItem(req *models.AddItemRequest) error {
	if req.SeatIndex < domain.MinSeatIndex {
		return fmt.Errorf("%w: seat index must be >= %d", ErrInvalidInput, domain.MinSeatIndex)
	}
	if req.Quantity < domain.MinQuantity {
		return fmt.Errorf("%w: quantity must be >= %d", ErrInvalidInput, domain.MinQuantity)
	}

	hasMenu := req.MenuItemID != nil
	hasCustom := req.CustomName != nil || req.CustomPrice != nil

	switch {
	case hasMenu && hasCustom:
		return fmt.Errorf("%w: menu item and custom item are mutually exclusive", ErrInvalidInput)
	case hasMenu:
		return nil
	case req.CustomName == nil || strings.TrimSpace(*req.CustomName) == "":
		return fmt.Errorf("%w: custom item requires a name", ErrInvalidInput)
	case req.CustomPrice == nil || *req.CustomPrice < 0:
		return fmt.Errorf("%w: custom item requires a non-negative price", ErrInvalidInput)
	default:
		return nil
	}
}
