package remove_order_item

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/baydesk/BayBookingService/internal/api/handlers"
	"github.com/baydesk/BayBookingService/internal/service/orders"
)

const (
	msgNotFound           = "order item not found"
	msgBookingNotFound    = "booking not found"
	msgBookingClosed      = "booking is closed for orders"
	msgSeatAlreadySettled = "seat already settled, void the payment first"
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

// Handle DELETE /api/v1/bookings/{bookingId}/orders/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID := vars["bookingId"]
	itemID := vars["itemId"]

	if err := h.service.RemoveItem(r.Context(), bookingID, itemID); err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderItemNotFound):
			h.logger.Warn("DELETE /bookings/{id}/orders/{itemId} - Not found: item_id=%s", itemID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id}/orders/{itemId} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, orders.ErrBookingClosed):
			h.logger.Warn("DELETE /bookings/{id}/orders/{itemId} - Booking closed: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingClosed)

		case errors.Is(err, orders.ErrSeatAlreadySettled):
			h.logger.Warn("DELETE /bookings/{id}/orders/{itemId} - Seat settled: booking_id=%s, item_id=%s",
				bookingID, itemID)
			handlers.RespondError(w, http.StatusConflict, msgSeatAlreadySettled)

		default:
			h.logger.Error("DELETE /bookings/{id}/orders/{itemId} - Failed: item_id=%s, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id}/orders/{itemId} - Removed: booking_id=%s, item_id=%s", bookingID, itemID)
	handlers.RespondNoContent(w)
}
