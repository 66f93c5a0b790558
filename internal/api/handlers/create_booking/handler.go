package create_booking

import (
	"errors"
	"net/http"

	"github.com/baydesk/BayBookingService/internal/api/handlers"
	"github.com/baydesk/BayBookingService/internal/api/middleware"
	createBooking "github.com/baydesk/BayBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgSlotConflict       = "the requested slot conflicts with an existing booking"
	msgUserNotFound       = "user not found"
	msgGuestNotAllowed    = "phone bookings require a registered customer"
	msgInvalidDate        = "invalid date or time, expected YYYY-MM-DD and HH:MM"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req createBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// An authenticated caller books for themselves unless the body names
	// another account explicitly.
	if req.UserID == nil {
		if userID, ok := middleware.GetUserID(r.Context()); ok {
			req.UserID = &userID
		}
	}

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: resource_id=%s", req.ResourceID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found")
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrGuestNotAllowed):
			h.logger.Warn("POST /bookings - Guest rejected for phone booking")
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgGuestNotAllowed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: resource_id=%s, error=%v",
				req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, resource_id=%s",
		result.ID, result.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
