package void_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/baydesk/BayBookingService/internal/api/handlers"
	"github.com/baydesk/BayBookingService/internal/service/bookings"
)

const msgNotFound = "payment not found or already voided"

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

// Handle PATCH /api/v1/payments/{paymentId}/void
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["paymentId"]

	if err := h.service.VoidPayment(r.Context(), paymentID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrPaymentNotFound):
			h.logger.Warn("PATCH /payments/{id}/void - Not found: payment_id=%s", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /payments/{id}/void - Failed: payment_id=%s, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /payments/{id}/void - Voided: payment_id=%s", paymentID)
	handlers.RespondNoContent(w)
}
