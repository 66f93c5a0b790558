package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/baydesk/BayBookingService/internal/config"
	"github.com/baydesk/BayBookingService/internal/domain"
	identityClient "github.com/baydesk/BayBookingService/internal/integrations/identity"
	"github.com/baydesk/BayBookingService/pkg/civiltime"
)

// UseCase admits bookings. Conflict checking and the insert run in one
// serializable transaction, so two concurrent requests for overlapping
// windows cannot both succeed.
type UseCase struct {
	bookingRepo    BookingRepository
	identityClient IdentityClient
	resolver       *civiltime.Resolver
	venue          config.VenueConfig
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase creates the booking admission use case.
func NewUseCase(
	bookingRepo BookingRepository,
	identityClient IdentityClient,
	resolver *civiltime.Resolver,
	venue config.VenueConfig,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		identityClient: identityClient,
		resolver:       resolver,
		venue:          venue,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute admits one booking.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: resource=%s date=%s time=%s duration=%dh players=%d source=%s",
		req.ResourceID, req.Date, req.StartTime, req.DurationHours, req.Players, req.Source)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date, err := civiltime.ParseCivilDate(req.Date)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	hour, minute, err := parseClock(req.StartTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid start time %q: %v", req.StartTime, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	start := uc.resolver.FromCivil(date, hour, minute, 0, 0)
	end := uc.resolveEnd(date, hour, minute, req.DurationHours)

	phone := normalizePhone(req.CustomerPhone)

	userID, err := uc.resolveCustomer(ctx, req, phone)
	if err != nil {
		return nil, err
	}

	source := domain.BookingSource(req.Source)

	booking := &domain.Booking{
		ID:            uuid.NewString(),
		ResourceID:    req.ResourceID,
		UserID:        userID,
		CustomerName:  req.CustomerName,
		CustomerPhone: phone,
		StartTime:     start,
		EndTime:       end,
		Players:       req.Players,
		BasePrice:     domain.RoundCents(uc.venue.HourlyRate * float64(req.DurationHours)),
		TaxRate:       uc.venue.TaxRate,
		Status:        domain.InitialStatus(source),
		Source:        source,
	}

	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Locks the resource's bookings in the window before checking.
		existing, err := uc.bookingRepo.ListByResourceWindow(txCtx, domain.ResourceBookingsFilter{
			ResourceID:  req.ResourceID,
			WindowStart: &start,
			WindowEnd:   &end,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list bookings: %v", err)
			return fmt.Errorf("%w: listing bookings: %v", ErrInternal, err)
		}

		for _, b := range existing {
			if b.IsActive() && b.Overlaps(start, end) {
				uc.logger.Warn("CreateBooking: slot conflict with booking id=%s on resource=%s",
					b.ID, req.ResourceID)
				return ErrSlotConflict
			}
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: creating booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: admitted booking id=%s resource=%s status=%s",
		result.ID, result.ResourceID, result.Status)
	return fromDomain(result), nil
}

// resolveCustomer attaches a registered account to the booking when one can
// be found. Explicit userId wins; otherwise the contact phone is looked up.
// Phone-source bookings must resolve to an account.
func (uc *UseCase) resolveCustomer(ctx context.Context, req *Request, phone string) (*string, error) {
	if req.UserID != nil {
		user, err := uc.identityClient.GetUser(ctx, *req.UserID)
		if err != nil {
			if errors.Is(err, identityClient.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: user id=%s not found", *req.UserID)
				return nil, ErrUserNotFound
			}
			uc.logger.Error("CreateBooking: identity lookup failed for user id=%s: %v", *req.UserID, err)
			return nil, fmt.Errorf("%w: identity lookup: %v", ErrInternal, err)
		}
		return &user.ID, nil
	}

	user, err := uc.identityClient.GetUserByPhone(ctx, phone)
	switch {
	case err == nil:
		uc.logger.Info("CreateBooking: phone resolved to user id=%s", user.ID)
		return &user.ID, nil
	case errors.Is(err, identityClient.ErrUserNotFound):
		if domain.BookingSource(req.Source) == domain.SourcePhone {
			uc.logger.Warn("CreateBooking: phone-source booking with unregistered customer rejected")
			return nil, ErrGuestNotAllowed
		}
		return nil, nil
	default:
		// Identity being down must not block a walk-in at the counter.
		if domain.BookingSource(req.Source) == domain.SourcePhone {
			uc.logger.Error("CreateBooking: identity lookup failed: %v", err)
			return nil, fmt.Errorf("%w: identity lookup: %v", ErrInternal, err)
		}
		uc.logger.Warn("CreateBooking: identity unavailable, admitting as guest: %v", err)
		return nil, nil
	}
}

// resolveEnd maps the civil end-of-session clock to an instant. Sessions may
// run past midnight into the next civil day.
func (uc *UseCase) resolveEnd(date civiltime.CivilDate, hour, minute, durationHours int) time.Time {
	endMinute := hour*60 + minute + durationHours*60
	if endMinute >= 24*60 {
		date = date.AddDays(endMinute / (24 * 60))
		endMinute = endMinute % (24 * 60)
	}
	return uc.resolver.FromCivil(date, endMinute/60, endMinute%60, 0, 0)
}
