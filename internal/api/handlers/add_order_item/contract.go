package add_order_item

import (
	"context"

	"github.com/baydesk/BayBookingService/internal/service/orders/models"
)

type OrderService interface {
	AddItem(ctx context.Context, bookingID string, req *models.AddItemRequest) (*models.OrderItemResponse, error)
	ListBookingItems(ctx context.Context, bookingID string) ([]*models.OrderItemResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
