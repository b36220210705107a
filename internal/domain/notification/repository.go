// internal/domain/notification/repository.go
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/domain/order"
)

// Repository is the narrow read surface dispatch needs. It keeps the
// dispatch logic mockable without a database.
type Repository interface {
	// OrderWithContacts loads an order with its customer, items and
	// pickup location. Returns ErrOrderNotFound when absent.
	OrderWithContacts(ctx context.Context, orderID string) (*order.Order, error)

	// DueOrders returns the orders scheduled for the given date that
	// are still being fulfilled (in progress or ready).
	DueOrders(ctx context.Context, date time.Time) ([]order.Order, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates the GORM-backed repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) OrderWithContacts(ctx context.Context, orderID string) (*order.Order, error) {
	var o order.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("Items").Preload("PickupLocation").
		Where("id = ?", orderID).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	return &o, nil
}

func (r *gormRepository) DueOrders(ctx context.Context, date time.Time) ([]order.Order, error) {
	var orders []order.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("Items").Preload("PickupLocation").
		Where("order_date = ? AND status IN ?",
			date.Format("2006-01-02"),
			[]order.OrderStatus{order.OrderStatusInProgress, order.OrderStatusReady}).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load due orders: %w", err)
	}
	return orders, nil
}
