package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/baydesk/BayBookingService/internal/domain"
	bookingRepo "github.com/baydesk/BayBookingService/internal/infra/storage/booking"
	paymentRepo "github.com/baydesk/BayBookingService/internal/infra/storage/payment"
	"github.com/baydesk/BayBookingService/internal/service/bookings/models"
)

// Service handles the booking lifecycle after admission.
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService creates a booking lifecycle service.
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID fetches a booking.
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings fetches a user's booking history, optionally filtered by status.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%s", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel cancels a booking. Bookings with applied (non-voided) payments
// cannot be cancelled until those payments are voided.
func (s *Service) Cancel(ctx context.Context, bookingID string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s", bookingID)

	reason := strings.TrimSpace(req.CancellationReason)
	if len(reason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%s", bookingID)
		return fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		applied, err := s.paymentRepo.CountNonVoided(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("%w: Cancel - counting payments: %v", ErrInternal, err)
		}
		if applied > 0 {
			s.logger.Warn("Cancel: booking id=%s has %d applied payments", bookingID, applied)
			return ErrRequiresRefund
		}

		if err := s.bookingRepo.Cancel(ctx, bookingID, reason); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: booking id=%s cancelled", bookingID)
	return nil
}

// Confirm moves a pending booking to confirmed.
func (s *Service) Confirm(ctx context.Context, bookingID string) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, domain.StatusConfirmed)
}

// Close completes a booking. Used by operators at the end of a session;
// fully-paid bookings past their end time complete automatically on the
// final payment instead.
func (s *Service) Close(ctx context.Context, bookingID string) (*models.BookingResponse, error) {
	return s.transition(ctx, bookingID, domain.StatusCompleted)
}

func (s *Service) transition(ctx context.Context, bookingID string, target domain.BookingStatus) (*models.BookingResponse, error) {
	s.logger.Info("transition: booking id=%s -> %s", bookingID, target)

	var result *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}

		if !booking.CanTransitionTo(target) {
			s.logger.Warn("transition: booking id=%s cannot move %s -> %s", bookingID, booking.Status, target)
			return ErrInvalidTransition
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, target); err != nil {
			return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}

		booking.Status = target
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(result), nil
}

// VoidPayment voids an applied payment, reopening the seat for settlement.
func (s *Service) VoidPayment(ctx context.Context, paymentID string) error {
	s.logger.Info("VoidPayment: voiding payment id=%s", paymentID)

	err := s.paymentRepo.Void(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("VoidPayment: payment id=%s not found or already voided", paymentID)
			return ErrPaymentNotFound
		}
		s.logger.Error("VoidPayment: repository error for payment id=%s: %v", paymentID, err)
		return fmt.Errorf("%w: VoidPayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("VoidPayment: payment id=%s voided", paymentID)
	return nil
}

// LinkGuestBookings attaches all guest bookings carrying the given phone to
// the user's account. Idempotent: already-linked bookings are untouched.
func (s *Service) LinkGuestBookings(ctx context.Context, req *models.LinkGuestBookingsRequest) (*models.LinkGuestBookingsResponse, error) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%w: userId and phone are required", ErrInvalidInput)
	}

	linked, err := s.bookingRepo.RelinkGuestByPhone(ctx, req.Phone, req.UserID)
	if err != nil {
		s.logger.Error("LinkGuestBookings: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: LinkGuestBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("LinkGuestBookings: linked %d bookings to user=%s", linked, req.UserID)
	return &models.LinkGuestBookingsResponse{LinkedCount: linked}, nil
}
