package add_order_item

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/baydesk/BayBookingService/internal/api/handlers"
	"github.com/baydesk/BayBookingService/internal/service/orders"
	"github.com/baydesk/BayBookingService/internal/service/orders/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgMenuItemNotFound   = "menu item not found"
	msgBookingClosed      = "booking is closed for orders"
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

// Handle POST /api/v1/bookings/{bookingId}/orders
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req models.AddItemRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/orders - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	item, err := h.service.AddItem(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/orders - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, orders.ErrMenuItemNotFound):
			h.logger.Warn("POST /bookings/{id}/orders - Menu item not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgMenuItemNotFound)

		case errors.Is(err, orders.ErrBookingClosed):
			h.logger.Warn("POST /bookings/{id}/orders - Booking closed: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingClosed)

		case errors.Is(err, orders.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/orders - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/{id}/orders - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/orders - Item added: booking_id=%s, item_id=%s, seat=%d",
		bookingID, item.ID, item.SeatIndex)
	handlers.RespondJSON(w, http.StatusCreated, item)
}

// HandleList GET /api/v1/bookings/{bookingId}/orders
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	items, err := h.service.ListBookingItems(r.Context(), bookingID)
	if err != nil {
		h.logger.Error("GET /bookings/{id}/orders - Failed: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}
