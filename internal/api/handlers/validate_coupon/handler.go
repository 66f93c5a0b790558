package validate_coupon

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/baydesk/BayBookingService/internal/api/handlers"
	"github.com/baydesk/BayBookingService/internal/service/coupons"
)

const (
	msgCouponInvalid = "coupon is not valid"
	msgCouponExpired = "coupon has expired"
)

type Handler struct {
	service CouponService
	logger  Logger
}

func NewHandler(service CouponService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/coupons/{code}/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	coupon, err := h.service.Validate(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, coupons.ErrCouponExpired):
			h.logger.Warn("GET /coupons/{code}/validate - Expired: code=%s", code)
			handlers.RespondError(w, http.StatusGone, msgCouponExpired)

		case errors.Is(err, coupons.ErrCouponInvalid):
			h.logger.Warn("GET /coupons/{code}/validate - Invalid: code=%s", code)
			handlers.RespondNotFound(w, msgCouponInvalid)

		default:
			h.logger.Error("GET /coupons/{code}/validate - Failed: code=%s, error=%v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /coupons/{code}/validate - Valid: code=%s, discount=%.2f", code, coupon.DiscountAmount)
	handlers.RespondJSON(w, http.StatusOK, coupon)
}
