package remove_order_item

import "context"

type OrderService interface {
	RemoveItem(ctx context.Context, bookingID, itemID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
