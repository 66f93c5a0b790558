package get_seat_invoice

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/baydesk/BayBookingService/internal/api/handlers"
	"github.com/baydesk/BayBookingService/internal/service/orders"
)

const (
	msgInvalidSeatIndex = "invalid seat index"
	msgBookingNotFound  = "booking not found"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/seats/{seatIndex}/invoice
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]

	seatIndex, err := strconv.Atoi(vars["seatIndex"])
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/seats/{seat}/invoice - Invalid seat index: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSeatIndex)
		return
	}

	invoice, err := h.service.GetSeatInvoice(r.Context(), bookingID, seatIndex)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/seats/{seat}/invoice - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id}/seats/{seat}/invoice - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /bookings/{id}/seats/{seat}/invoice - Failed: booking_id=%s, seat=%d, error=%v",
				bookingID, seatIndex, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, invoice)
}
