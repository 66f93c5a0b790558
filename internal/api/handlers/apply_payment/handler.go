package apply_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/baydesk/BayBookingService/internal/api/handlers"
	applyPayment "github.com/baydesk/BayBookingService/internal/usecase/apply_payment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBookingNotFound    = "booking not found"
	msgBookingClosed      = "booking is closed for payments"
	msgAlreadyPaid        = "seat already paid"
	msgAmountMismatch     = "payment amount does not match amount due"
	msgCouponInvalid      = "coupon is not valid"
	msgCouponExpired      = "coupon has expired"
)

type Handler struct {
	useCase ApplyPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ApplyPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req applyPayment.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BookingID = bookingID

	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, applyPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payments - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, applyPayment.ErrBookingClosed):
			h.logger.Warn("POST /bookings/{id}/payments - Booking closed: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgBookingClosed)

		case errors.Is(err, applyPayment.ErrAlreadyPaid):
			h.logger.Warn("POST /bookings/{id}/payments - Already paid: booking_id=%s, seat=%d",
				bookingID, req.SeatIndex)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPaid)

		case errors.Is(err, applyPayment.ErrAmountMismatch):
			h.logger.Warn("POST /bookings/{id}/payments - Amount mismatch: booking_id=%s, seat=%d, amount=%.2f",
				bookingID, req.SeatIndex, req.Amount)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgAmountMismatch)

		case errors.Is(err, applyPayment.ErrCouponExpired):
			h.logger.Warn("POST /bookings/{id}/payments - Coupon expired: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponExpired)

		case errors.Is(err, applyPayment.ErrCouponInvalid):
			h.logger.Warn("POST /bookings/{id}/payments - Coupon invalid: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponInvalid)

		case errors.Is(err, applyPayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/payments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings/{id}/payments - Failed: booking_id=%s, seat=%d, error=%v",
				bookingID, req.SeatIndex, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payments - Applied: payment_id=%s, booking_id=%s, seat=%d, settled=%t",
		result.PaymentID, bookingID, result.SeatIndex, result.FullySettled)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
