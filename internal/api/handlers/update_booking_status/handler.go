package update_booking_status

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/baydesk/BayBookingService/internal/api/handlers"
	"github.com/baydesk/BayBookingService/internal/service/bookings"
	"github.com/baydesk/BayBookingService/internal/service/bookings/models"
)

const (
	msgNotFound          = "booking not found"
	msgInvalidTransition = "booking status does not allow this transition"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleConfirm PATCH /api/v1/bookings/{bookingId}/confirm
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "confirm", h.service.Confirm)
}

// HandleClose PATCH /api/v1/bookings/{bookingId}/close
func (h *Handler) HandleClose(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "close", h.service.Close)
}

func (h *Handler) handle(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(ctx context.Context, bookingID string) (*models.BookingResponse, error),
) {
	bookingID := mux.Vars(r)["bookingId"]

	booking, err := fn(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Not found: booking_id=%s", action, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid transition: booking_id=%s", action, bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{id}/%s - Failed: booking_id=%s, error=%v", action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - Done: booking_id=%s, status=%s", action, bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
