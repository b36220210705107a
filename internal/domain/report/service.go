// internal/domain/report/service.go
package report

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/menu"
	"github.com/your-org/spicerack-backend/internal/domain/order"
)

// Service handles admin reporting queries
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new report service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DashboardStats represents overall dashboard statistics
type DashboardStats struct {
	// Sales metrics, in cents
	TotalRevenue    int64 `json:"total_revenue"`
	RevenueThisWeek int64 `json:"revenue_this_week"`
	AvgOrderValue   int64 `json:"avg_order_value"`

	// Order metrics
	TotalOrders    int64 `json:"total_orders"`
	OrdersToday    int64 `json:"orders_today"`
	OrdersThisWeek int64 `json:"orders_this_week"`
	PendingOrders  int64 `json:"pending_orders"`
	OrdersDueToday int64 `json:"orders_due_today"`

	// Customer metrics
	TotalCustomers        int64 `json:"total_customers"`
	NewCustomersThisWeek  int64 `json:"new_customers_this_week"`

	// Cycle split
	MondayOrders   int64 `json:"monday_orders"`
	ThursdayOrders int64 `json:"thursday_orders"`
}

// TimeSeriesData is one bucket of a revenue/order series
type TimeSeriesData struct {
	Date    string `json:"date"`
	Revenue int64  `json:"revenue"`
	Orders  int64  `json:"orders"`
}

// ItemSalesData aggregates sales of one menu item
type ItemSalesData struct {
	MenuItemID string `json:"menu_item_id"`
	ItemName   string `json:"item_name"`
	TotalSold  int64  `json:"total_sold"`
	Revenue    int64  `json:"revenue"`
	OrderCount int64  `json:"order_count"`
}

// countedStatuses excludes canceled orders from revenue figures
var countedStatuses = []order.OrderStatus{
	order.OrderStatusPending,
	order.OrderStatusInProgress,
	order.OrderStatusHold,
	order.OrderStatusReady,
	order.OrderStatusCompleted,
}

// GetDashboardStats builds the admin dashboard summary
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}
	now := time.Now()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7)

	type revenueRow struct {
		Revenue int64
		Count   int64
	}
	var total revenueRow
	err := s.db.Model(&order.Order{}).
		Select("COALESCE(SUM(total),0) AS revenue, COUNT(*) AS count").
		Where("status IN ?", countedStatuses).
		Scan(&total).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	stats.TotalRevenue = total.Revenue
	stats.TotalOrders = total.Count
	if total.Count > 0 {
		stats.AvgOrderValue = total.Revenue / total.Count
	}

	var week revenueRow
	err = s.db.Model(&order.Order{}).
		Select("COALESCE(SUM(total),0) AS revenue, COUNT(*) AS count").
		Where("status IN ? AND created_at >= ?", countedStatuses, weekAgo).
		Scan(&week).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate weekly revenue: %w", err)
	}
	stats.RevenueThisWeek = week.Revenue
	stats.OrdersThisWeek = week.Count

	s.db.Model(&order.Order{}).Where("DATE(created_at) = ?", today).Count(&stats.OrdersToday)
	s.db.Model(&order.Order{}).Where("status = ?", order.OrderStatusPending).Count(&stats.PendingOrders)
	s.db.Model(&order.Order{}).
		Where("order_date = ? AND status IN ?", today,
			[]order.OrderStatus{order.OrderStatusInProgress, order.OrderStatusReady}).
		Count(&stats.OrdersDueToday)

	s.db.Table("customers").Where("deleted_at IS NULL").Count(&stats.TotalCustomers)
	s.db.Table("customers").Where("deleted_at IS NULL AND created_at >= ?", weekAgo).
		Count(&stats.NewCustomersThisWeek)

	s.db.Model(&order.Order{}).Where("order_day = ? AND status IN ?",
		menu.OrderDayMonday, countedStatuses).Count(&stats.MondayOrders)
	s.db.Model(&order.Order{}).Where("order_day = ? AND status IN ?",
		menu.OrderDayThursday, countedStatuses).Count(&stats.ThursdayOrders)

	return stats, nil
}

// GetSalesByDay returns daily revenue and order counts for a date range
func (s *Service) GetSalesByDay(from, to time.Time) ([]TimeSeriesData, error) {
	var series []TimeSeriesData
	err := s.db.Model(&order.Order{}).
		Select("DATE(created_at) AS date, COALESCE(SUM(total),0) AS revenue, COUNT(*) AS orders").
		Where("status IN ? AND created_at >= ? AND created_at < ?",
			countedStatuses, from, to.AddDate(0, 0, 1)).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&series).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily sales: %w", err)
	}
	return series, nil
}

// GetTopItems returns the best-selling menu items by quantity
func (s *Service) GetTopItems(limit int) ([]ItemSalesData, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var items []ItemSalesData
	err := s.db.Table("order_items").
		Select(`order_items.menu_item_id,
			order_items.item_name,
			SUM(order_items.quantity) AS total_sold,
			SUM(order_items.total_price) AS revenue,
			COUNT(DISTINCT order_items.order_id) AS order_count`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status IN ? AND orders.deleted_at IS NULL", countedStatuses).
		Group("order_items.menu_item_id, order_items.item_name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top items: %w", err)
	}
	return items, nil
}
