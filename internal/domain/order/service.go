// internal/domain/order/service.go
package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/domain/cart"
	"github.com/your-org/spicerack-backend/internal/domain/customer"
	"github.com/your-org/spicerack-backend/internal/domain/menu"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrBelowMinimum           = errors.New("order is below the minimum order amount")
	ErrInvalidDiscountCode    = errors.New("discount code is invalid or expired")
	ErrOutsideDeliveryZone    = errors.New("delivery is not available for this zip code")
	ErrPickupLocationNotFound = errors.New("pickup location not found")
	ErrInvalidStatus          = errors.New("invalid order status")
	ErrTermsNotAgreed         = errors.New("terms must be agreed to before ordering")
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

// PlaceOrderItem is one requested line. Prices are never accepted from
// the client; they are re-resolved from the menu table.
type PlaceOrderItem struct {
	MenuItemID          string  `json:"menu_item_id" binding:"required"`
	Size                *string `json:"size" binding:"omitempty,oneof=8oz 16oz"`
	Quantity            int     `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string  `json:"special_instructions"`
}

// DeliveryAddressRequest carries the delivery destination
type DeliveryAddressRequest struct {
	StreetAddress       string `json:"street_address" binding:"required"`
	ApartmentNumber     string `json:"apartment_number"`
	BuildingName        string `json:"building_name"`
	City                string `json:"city" binding:"required"`
	State               string `json:"state" binding:"required"`
	ZipCode             string `json:"zip_code" binding:"required"`
	GateCode            string `json:"gate_code"`
	ParkingInstructions string `json:"parking_instructions"`
	DeliveryNotes       string `json:"delivery_notes"`
}

// PlaceOrderRequest represents an order placement request
type PlaceOrderRequest struct {
	OrderType        OrderType               `json:"order_type" binding:"required,oneof=delivery pickup"`
	OrderDay         menu.OrderDay           `json:"order_day" binding:"required,oneof=monday thursday"`
	Items            []PlaceOrderItem        `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress  *DeliveryAddressRequest `json:"delivery_address"`
	PickupLocationID *string                 `json:"pickup_location_id"`
	DiscountCode     string                  `json:"discount_code"`
	IsGift           bool                    `json:"is_gift"`
	RecipientName    string                  `json:"recipient_name"`
	RecipientPhone   string                  `json:"recipient_phone"`
	GiftMessage      string                  `json:"gift_message"`
	SpecialRequests  string                  `json:"special_requests"`
	AgreedToTerms    bool                    `json:"agreed_to_terms"`
}

// UpdateStatusRequest represents a status update request
type UpdateStatusRequest struct {
	Status  OrderStatus `json:"status" binding:"required"`
	Comment string      `json:"comment"`
}

// Pagination represents pagination parameters
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// ListFilters narrows admin order listings
type ListFilters struct {
	Status    OrderStatus
	OrderDay  menu.OrderDay
	OrderDate *time.Time
}

// PlaceOrder validates, re-prices and creates an order
func (s *Service) PlaceOrder(customerID string, req *PlaceOrderRequest) (*Order, error) {
	if !req.AgreedToTerms {
		return nil, ErrTermsNotAgreed
	}

	pricedItems, subtotal, err := s.priceItems(req.Items)
	if err != nil {
		return nil, err
	}

	if subtotal < cart.MinimumOrderAmount {
		return nil, ErrBelowMinimum
	}

	now := time.Now()

	// Discount code, validated against the re-priced subtotal
	var discountAmount int64
	var discountCode *DiscountCode
	if req.DiscountCode != "" {
		code := strings.ToUpper(strings.TrimSpace(req.DiscountCode))
		var dc DiscountCode
		if err := s.db.Where("code = ?", code).First(&dc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidDiscountCode
			}
			return nil, fmt.Errorf("failed to look up discount code: %w", err)
		}
		if !dc.IsUsable(subtotal, now) {
			return nil, ErrInvalidDiscountCode
		}
		discountAmount = dc.AmountOff(subtotal)
		discountCode = &dc
	}

	// Fulfillment details
	var deliveryFee int64
	var deliveryAddress DeliveryAddress
	var pickupLocationID *string

	switch req.OrderType {
	case OrderTypeDelivery:
		if req.DeliveryAddress == nil {
			return nil, fmt.Errorf("delivery orders require a delivery address")
		}
		var zone customer.DeliveryZone
		err := s.db.Where("zip_code = ? AND is_active = ?", req.DeliveryAddress.ZipCode, true).
			First(&zone).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOutsideDeliveryZone
			}
			return nil, fmt.Errorf("failed to check delivery zone: %w", err)
		}
		deliveryFee = zone.DeliveryFee
		deliveryAddress = DeliveryAddress{
			StreetAddress:       req.DeliveryAddress.StreetAddress,
			ApartmentNumber:     req.DeliveryAddress.ApartmentNumber,
			BuildingName:        req.DeliveryAddress.BuildingName,
			City:                req.DeliveryAddress.City,
			State:               req.DeliveryAddress.State,
			ZipCode:             req.DeliveryAddress.ZipCode,
			GateCode:            req.DeliveryAddress.GateCode,
			ParkingInstructions: req.DeliveryAddress.ParkingInstructions,
			DeliveryNotes:       req.DeliveryAddress.DeliveryNotes,
		}
	case OrderTypePickup:
		if req.PickupLocationID == nil {
			return nil, fmt.Errorf("pickup orders require a pickup location")
		}
		var loc PickupLocation
		err := s.db.Where("id = ? AND is_active = ?", *req.PickupLocationID, true).
			First(&loc).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPickupLocationNotFound
			}
			return nil, fmt.Errorf("failed to look up pickup location: %w", err)
		}
		pickupLocationID = req.PickupLocationID
	}

	// Tax applies to the discounted subtotal
	tax := int64(math.Round(float64(subtotal-discountAmount) * s.config.Ordering.TaxRate))
	total := subtotal - discountAmount + tax + deliveryFee

	order := &Order{
		OrderNumber:      GenerateOrderNumber(now),
		CustomerID:       customerID,
		OrderType:        req.OrderType,
		OrderDay:         req.OrderDay,
		OrderDate:        NextOrderDate(req.OrderDay, now),
		Status:           OrderStatusPending,
		Subtotal:         subtotal,
		DiscountAmount:   discountAmount,
		DeliveryFee:      deliveryFee,
		Tax:              tax,
		Total:            total,
		DeliveryAddress:  deliveryAddress,
		PickupLocationID: pickupLocationID,
		IsGift:           req.IsGift,
		RecipientName:    req.RecipientName,
		RecipientPhone:   req.RecipientPhone,
		GiftMessage:      req.GiftMessage,
		SpecialRequests:  req.SpecialRequests,
		AgreedToTerms:    true,
		AgreedToTermsAt:  &now,
	}
	if discountCode != nil {
		order.DiscountCodeID = &discountCode.ID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range pricedItems {
			pricedItems[i].OrderID = order.ID
		}
		if err := tx.Create(&pricedItems).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		history := OrderStatusHistory{
			OrderID:   order.ID,
			Status:    OrderStatusPending,
			Comment:   "Order placed",
			CreatedBy: customerID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Usage increment is best-effort; a missed count never fails the order
	if discountCode != nil {
		if err := s.db.Model(&DiscountCode{}).Where("id = ?", discountCode.ID).
			UpdateColumn("current_uses", gorm.Expr("current_uses + 1")).Error; err != nil {
			s.logger.WithError(err).WithField("code", discountCode.Code).
				Warn("failed to increment discount code usage")
		}
	}

	order.Items = pricedItems
	return order, nil
}

// priceItems resolves every requested line against the menu table
func (s *Service) priceItems(items []PlaceOrderItem) ([]OrderItem, int64, error) {
	maxQty := s.config.Ordering.MaxItemQuantity
	priced := make([]OrderItem, 0, len(items))
	var subtotal int64

	for _, reqItem := range items {
		if reqItem.Quantity < 1 || reqItem.Quantity > maxQty {
			return nil, 0, fmt.Errorf("quantity for item %s must be between 1 and %d", reqItem.MenuItemID, maxQty)
		}

		var item menu.MenuItem
		err := s.db.Where("id = ? AND is_active = ?", reqItem.MenuItemID, true).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, fmt.Errorf("menu item %s not found or inactive", reqItem.MenuItemID)
			}
			return nil, 0, fmt.Errorf("failed to look up menu item: %w", err)
		}

		size := ""
		if reqItem.Size != nil {
			size = *reqItem.Size
		}
		unitPrice, ok := item.PriceFor(size)
		if !ok {
			return nil, 0, fmt.Errorf("item %s is not available in that size", item.Name)
		}

		totalPrice := unitPrice * int64(reqItem.Quantity)
		subtotal += totalPrice

		priced = append(priced, OrderItem{
			MenuItemID:          item.ID,
			ItemName:            item.Name,
			Size:                reqItem.Size,
			Quantity:            reqItem.Quantity,
			UnitPrice:           unitPrice,
			TotalPrice:          totalPrice,
			SpecialInstructions: reqItem.SpecialInstructions,
		})
	}

	return priced, subtotal, nil
}

// GetOrder returns an order with its items and related records
func (s *Service) GetOrder(orderID string) (*Order, error) {
	var order Order
	err := s.db.Preload("Items").Preload("Customer").Preload("PickupLocation").
		Preload("StatusHistory").Where("id = ?", orderID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// GetCustomerOrder returns an order only if it belongs to the customer
func (s *Service) GetCustomerOrder(customerID, orderID string) (*Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListCustomerOrders returns a customer's orders, newest first
func (s *Service) ListCustomerOrders(customerID string, pagination *Pagination) ([]Order, error) {
	normalize(pagination)

	query := s.db.Model(&Order{}).Where("customer_id = ?", customerID)
	if err := query.Count(&pagination.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	err := query.Preload("Items").Preload("PickupLocation").
		Order("created_at DESC").
		Offset((pagination.Page - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListOrders returns orders for the admin dashboard with optional filters
func (s *Service) ListOrders(filters *ListFilters, pagination *Pagination) ([]Order, error) {
	normalize(pagination)

	query := s.db.Model(&Order{})
	if filters != nil {
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
		if filters.OrderDay != "" {
			query = query.Where("order_day = ?", filters.OrderDay)
		}
		if filters.OrderDate != nil {
			query = query.Where("order_date = ?", filters.OrderDate.Format("2006-01-02"))
		}
	}

	if err := query.Count(&pagination.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	err := query.Preload("Items").Preload("Customer").Preload("PickupLocation").
		Order("created_at DESC").
		Offset((pagination.Page - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status and records the change
func (s *Service) UpdateStatus(orderID string, req *UpdateStatusRequest, actorID string) (*Order, error) {
	if !req.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Update("status", req.Status).Error; err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		history := OrderStatusHistory{
			OrderID:   order.ID,
			Status:    req.Status,
			Comment:   req.Comment,
			CreatedBy: actorID,
		}
		if err := tx.Create(&history).Error; err != nil {
			return fmt.Errorf("failed to record status history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = req.Status
	return order, nil
}

// CancelOrder cancels a customer's own order while still allowed
func (s *Service) CancelOrder(customerID, orderID string) (*Order, error) {
	order, err := s.GetCustomerOrder(customerID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.CanBeCancelled() {
		return nil, fmt.Errorf("order %s can no longer be cancelled", order.OrderNumber)
	}
	return s.UpdateStatus(orderID, &UpdateStatusRequest{
		Status:  OrderStatusCanceled,
		Comment: "Cancelled by customer",
	}, customerID)
}

// ListPickupLocations returns active pickup locations
func (s *Service) ListPickupLocations() ([]PickupLocation, error) {
	var locations []PickupLocation
	err := s.db.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").Find(&locations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pickup locations: %w", err)
	}
	return locations, nil
}

// SavePickupLocation creates or updates a pickup location (admin)
func (s *Service) SavePickupLocation(loc *PickupLocation) error {
	if err := s.db.Save(loc).Error; err != nil {
		return fmt.Errorf("failed to save pickup location: %w", err)
	}
	return nil
}

// DeletePickupLocation deactivates a pickup location (admin)
func (s *Service) DeletePickupLocation(id string) error {
	result := s.db.Model(&PickupLocation{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate pickup location: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPickupLocationNotFound
	}
	return nil
}

func normalize(p *Pagination) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 || p.PageSize > 100 {
		p.PageSize = 20
	}
}
