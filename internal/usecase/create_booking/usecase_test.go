package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baydesk/BayBookingService/internal/config"
	"github.com/baydesk/BayBookingService/internal/domain"
	identityClient "github.com/baydesk/BayBookingService/internal/integrations/identity"
	"github.com/baydesk/BayBookingService/pkg/civiltime"
)

type mockBookingRepo struct {
	CreateFunc               func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByResourceWindowFunc func(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, booking)
	}
	return booking, nil
}

func (m *mockBookingRepo) ListByResourceWindow(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
	if m.ListByResourceWindowFunc != nil {
		return m.ListByResourceWindowFunc(ctx, filter)
	}
	return []*domain.Booking{}, nil
}

type mockIdentity struct {
	GetUserFunc        func(ctx context.Context, userID string) (*identityClient.User, error)
	GetUserByPhoneFunc func(ctx context.Context, phone string) (*identityClient.User, error)
}

func (m *mockIdentity) GetUser(ctx context.Context, userID string) (*identityClient.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, userID)
	}
	return nil, identityClient.ErrUserNotFound
}

func (m *mockIdentity) GetUserByPhone(ctx context.Context, phone string) (*identityClient.User, error) {
	if m.GetUserByPhoneFunc != nil {
		return m.GetUserByPhoneFunc(ctx, phone)
	}
	return nil, identityClient.ErrUserNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func halifax(t *testing.T) *civiltime.Resolver {
	t.Helper()
	resolver, err := civiltime.LoadResolver("America/Halifax")
	require.NoError(t, err)
	return resolver
}

func testVenue() config.VenueConfig {
	return config.VenueConfig{
		Timezone:               "America/Halifax",
		SlotGranularityMinutes: 60,
		HourlyRate:             50,
		TaxRate:                0.13,
	}
}

func newTestUseCase(t *testing.T, repo *mockBookingRepo, identity *mockIdentity) *UseCase {
	t.Helper()
	if repo == nil {
		repo = &mockBookingRepo{}
	}
	if identity == nil {
		identity = &mockIdentity{}
	}
	return NewUseCase(repo, identity, halifax(t), testVenue(), fakeTxManager{}, nopLogger{})
}

func walkInRequest() *Request {
	return &Request{
		ResourceID:    "bay1",
		CustomerName:  "Dana",
		CustomerPhone: "(902) 555-1234",
		Date:          "2025-07-15",
		StartTime:     "14:00",
		DurationHours: 2,
		Players:       3,
		Source:        "WALK_IN",
	}
}

func TestExecuteWalkInIsConfirmedImmediately(t *testing.T) {
	var created *domain.Booking
	repo := &mockBookingRepo{CreateFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		created = booking
		return booking, nil
	}}
	uc := newTestUseCase(t, repo, nil)

	resp, err := uc.Execute(context.Background(), walkInRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusConfirmed, created.Status)
	assert.Equal(t, 100.0, created.BasePrice) // 50/h * 2h
	assert.Equal(t, 0.13, created.TaxRate)
	assert.Equal(t, "9025551234", created.CustomerPhone)
	assert.Nil(t, created.UserID)
	assert.Equal(t, "CONFIRMED", resp.Status)

	// 14:00 Halifax in July is 17:00 UTC (ADT, UTC-3).
	assert.Equal(t, time.Date(2025, 7, 15, 17, 0, 0, 0, time.UTC), created.StartTime.UTC())
	assert.Equal(t, time.Date(2025, 7, 15, 19, 0, 0, 0, time.UTC), created.EndTime.UTC())
}

func TestExecuteOnlineBookingStartsPending(t *testing.T) {
	var created *domain.Booking
	repo := &mockBookingRepo{CreateFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		created = booking
		return booking, nil
	}}
	uc := newTestUseCase(t, repo, nil)

	req := walkInRequest()
	req.Source = "ONLINE"
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)
}

func TestExecuteOverlapRejected(t *testing.T) {
	start := time.Date(2025, 7, 15, 17, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{ListByResourceWindowFunc: func(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
		return []*domain.Booking{{
			ID:         "other",
			ResourceID: "bay1",
			Status:     domain.StatusConfirmed,
			StartTime:  start.Add(time.Hour),
			EndTime:    start.Add(3 * time.Hour),
		}}, nil
	}}
	uc := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), walkInRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecuteCancelledBookingDoesNotBlock(t *testing.T) {
	start := time.Date(2025, 7, 15, 17, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{ListByResourceWindowFunc: func(ctx context.Context, filter domain.ResourceBookingsFilter) ([]*domain.Booking, error) {
		return []*domain.Booking{{
			ID:         "other",
			ResourceID: "bay1",
			Status:     domain.StatusCancelled,
			StartTime:  start,
			EndTime:    start.Add(2 * time.Hour),
		}}, nil
	}}
	uc := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), walkInRequest())
	assert.NoError(t, err)
}

func TestExecutePhoneSourceRequiresRegisteredCustomer(t *testing.T) {
	uc := newTestUseCase(t, nil, nil)

	req := walkInRequest()
	req.Source = "PHONE"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrGuestNotAllowed)
}

func TestExecutePhoneLookupLinksAccount(t *testing.T) {
	identity := &mockIdentity{GetUserByPhoneFunc: func(ctx context.Context, phone string) (*identityClient.User, error) {
		assert.Equal(t, "9025551234", phone)
		return &identityClient.User{ID: "u1", Name: "Dana"}, nil
	}}
	var created *domain.Booking
	repo := &mockBookingRepo{CreateFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		created = booking
		return booking, nil
	}}
	uc := newTestUseCase(t, repo, identity)

	_, err := uc.Execute(context.Background(), walkInRequest())
	require.NoError(t, err)
	require.NotNil(t, created.UserID)
	assert.Equal(t, "u1", *created.UserID)
}

func TestExecuteExplicitUnknownUserRejected(t *testing.T) {
	uc := newTestUseCase(t, nil, nil)

	req := walkInRequest()
	userID := "ghost"
	req.UserID = &userID
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecuteIdentityOutageAdmitsWalkInAsGuest(t *testing.T) {
	identity := &mockIdentity{GetUserByPhoneFunc: func(ctx context.Context, phone string) (*identityClient.User, error) {
		return nil, errors.New("connection refused")
	}}
	var created *domain.Booking
	repo := &mockBookingRepo{CreateFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		created = booking
		return booking, nil
	}}
	uc := newTestUseCase(t, repo, identity)

	_, err := uc.Execute(context.Background(), walkInRequest())
	require.NoError(t, err)
	assert.Nil(t, created.UserID)
}

func TestExecuteSessionMayCrossMidnight(t *testing.T) {
	var created *domain.Booking
	repo := &mockBookingRepo{CreateFunc: func(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
		created = booking
		return booking, nil
	}}
	uc := newTestUseCase(t, repo, nil)

	req := walkInRequest()
	req.StartTime = "23:00"
	req.DurationHours = 2
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 23:00 ADT = 02:00 UTC next day; end 01:00 ADT = 04:00 UTC.
	assert.Equal(t, time.Date(2025, 7, 16, 2, 0, 0, 0, time.UTC), created.StartTime.UTC())
	assert.Equal(t, time.Date(2025, 7, 16, 4, 0, 0, 0, time.UTC), created.EndTime.UTC())
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(t, nil, nil)

	cases := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing resource", func(req *Request) { req.ResourceID = "" }},
		{"missing name", func(req *Request) { req.CustomerName = "" }},
		{"missing phone", func(req *Request) { req.CustomerPhone = "---" }},
		{"duration too long", func(req *Request) { req.DurationHours = 5 }},
		{"zero duration", func(req *Request) { req.DurationHours = 0 }},
		{"too many players", func(req *Request) { req.Players = 5 }},
		{"zero players", func(req *Request) { req.Players = 0 }},
		{"unknown source", func(req *Request) { req.Source = "CARRIER_PIGEON" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := walkInRequest()
			tc.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecuteInvalidDate(t *testing.T) {
	uc := newTestUseCase(t, nil, nil)

	req := walkInRequest()
	req.Date = "July 15"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
