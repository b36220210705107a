// internal/domain/customer/service.go
package customer

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/config"
	"github.com/your-org/spicerack-backend/internal/pkg/auth"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAddressNotFound    = errors.New("address not found")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// Service handles customer business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
}

// NewService creates a new customer service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents a customer registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FullName   *string `json:"full_name"`
	Phone      *string `json:"phone"`
	EmailOptIn *bool   `json:"email_opt_in"`
	SmsOptIn   *bool   `json:"sms_opt_in"`
}

// AddressRequest represents a create/update address request
type AddressRequest struct {
	StreetAddress       string `json:"street_address" binding:"required"`
	ApartmentNumber     string `json:"apartment_number"`
	BuildingName        string `json:"building_name"`
	City                string `json:"city" binding:"required"`
	State               string `json:"state" binding:"required"`
	ZipCode             string `json:"zip_code" binding:"required"`
	GateCode            string `json:"gate_code"`
	ParkingInstructions string `json:"parking_instructions"`
	DeliveryNotes       string `json:"delivery_notes"`
	IsDefault           bool   `json:"is_default"`
}

// Register creates a new customer account
func (s *Service) Register(req *RegisterRequest) (*Customer, error) {
	var existing Customer
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	cust := &Customer{
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     RoleCustomer,
		IsActive: true,
	}

	if err := s.db.Create(cust).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return cust, nil
}

// Authenticate verifies credentials and returns the customer
func (s *Service) Authenticate(email, password string) (*Customer, error) {
	var cust Customer
	if err := s.db.Where("email = ?", email).First(&cust).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	if !cust.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.passwordManager.VerifyPassword(password, cust.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	cust.LastLoginAt = &now
	// Login timestamp is best-effort
	s.db.Model(&cust).Update("last_login_at", now)

	return &cust, nil
}

// GetByID returns a customer with addresses preloaded
func (s *Service) GetByID(id string) (*Customer, error) {
	var cust Customer
	if err := s.db.Preload("Addresses").Where("id = ?", id).First(&cust).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &cust, nil
}

// UpdateProfile applies a partial profile update, including opt-in toggles
func (s *Service) UpdateProfile(id string, req *UpdateProfileRequest) (*Customer, error) {
	cust, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.EmailOptIn != nil {
		updates["email_opt_in"] = *req.EmailOptIn
	}
	if req.SmsOptIn != nil {
		updates["sms_opt_in"] = *req.SmsOptIn
	}

	if len(updates) > 0 {
		if err := s.db.Model(cust).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return s.GetByID(id)
}

// ListAddresses returns a customer's saved addresses
func (s *Service) ListAddresses(customerID string) ([]Address, error) {
	var addresses []Address
	if err := s.db.Where("customer_id = ?", customerID).
		Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

// CreateAddress saves a new delivery address for a customer
func (s *Service) CreateAddress(customerID string, req *AddressRequest) (*Address, error) {
	addr := &Address{
		CustomerID:          customerID,
		StreetAddress:       req.StreetAddress,
		ApartmentNumber:     req.ApartmentNumber,
		BuildingName:        req.BuildingName,
		City:                req.City,
		State:               req.State,
		ZipCode:             req.ZipCode,
		GateCode:            req.GateCode,
		ParkingInstructions: req.ParkingInstructions,
		DeliveryNotes:       req.DeliveryNotes,
		IsDefault:           req.IsDefault,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&Address{}).Where("customer_id = ?", customerID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(addr).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return addr, nil
}

// UpdateAddress updates an existing address owned by the customer
func (s *Service) UpdateAddress(customerID, addressID string, req *AddressRequest) (*Address, error) {
	var addr Address
	if err := s.db.Where("id = ? AND customer_id = ?", addressID, customerID).First(&addr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	addr.StreetAddress = req.StreetAddress
	addr.ApartmentNumber = req.ApartmentNumber
	addr.BuildingName = req.BuildingName
	addr.City = req.City
	addr.State = req.State
	addr.ZipCode = req.ZipCode
	addr.GateCode = req.GateCode
	addr.ParkingInstructions = req.ParkingInstructions
	addr.DeliveryNotes = req.DeliveryNotes
	addr.IsDefault = req.IsDefault

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if req.IsDefault {
			if err := tx.Model(&Address{}).
				Where("customer_id = ? AND id != ?", customerID, addressID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&addr).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return &addr, nil
}

// DeleteAddress removes an address owned by the customer
func (s *Service) DeleteAddress(customerID, addressID string) error {
	result := s.db.Where("id = ? AND customer_id = ?", addressID, customerID).Delete(&Address{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

// CheckDeliveryZone reports whether a zip code is deliverable and its fee
func (s *Service) CheckDeliveryZone(zipCode string) (*DeliveryZone, bool, error) {
	var zone DeliveryZone
	err := s.db.Where("zip_code = ? AND is_active = ?", zipCode, true).First(&zone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to check delivery zone: %w", err)
	}
	return &zone, true, nil
}
