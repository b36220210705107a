// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/your-org/spicerack-backend/internal/domain/customer"
	"github.com/your-org/spicerack-backend/internal/domain/menu"
	"github.com/your-org/spicerack-backend/internal/domain/order"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Customer domain - base tables
		&customer.Customer{},
		&customer.Address{},
		&customer.DeliveryZone{},

		// Menu domain
		&menu.MenuItem{},
		&menu.WeeklyMenu{},

		// Order domain - dependent tables
		&order.PickupLocation{},
		&order.DiscountCode{},
		&order.Order{},
		&order.OrderItem{},
		&order.OrderStatusHistory{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Customer indexes
		"CREATE INDEX IF NOT EXISTS idx_customers_email_active ON customers(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_customers_role ON customers(role)",
		"CREATE INDEX IF NOT EXISTS idx_customers_created_at ON customers(created_at DESC)",

		// Address indexes
		"CREATE INDEX IF NOT EXISTS idx_customer_addresses_customer ON customer_addresses(customer_id)",
		"CREATE INDEX IF NOT EXISTS idx_customer_addresses_default ON customer_addresses(customer_id, is_default)",

		// Delivery zone indexes
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_delivery_zones_zip ON delivery_zones(zip_code)",

		// Menu indexes
		"CREATE INDEX IF NOT EXISTS idx_menu_items_active ON menu_items(is_active, sort_order)",
		"CREATE INDEX IF NOT EXISTS idx_menu_items_category ON menu_items(category, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_weekly_menus_day ON weekly_menus(order_day)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_weekly_menus_day_item ON weekly_menus(order_day, menu_item_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_status ON orders(customer_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_date_status ON orders(order_date, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_order_day ON orders(order_day)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_order_number ON orders(order_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_menu_item ON order_items(menu_item_id)",

		// Order status history indexes
		"CREATE INDEX IF NOT EXISTS idx_order_status_history_order ON order_status_history(order_id, created_at DESC)",

		// Discount code indexes
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_discount_codes_code ON discount_codes(code)",
		"CREATE INDEX IF NOT EXISTS idx_discount_codes_active ON discount_codes(is_active)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminCustomer(); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	if err := m.seedMenuItems(); err != nil {
		return fmt.Errorf("failed to seed menu items: %w", err)
	}

	if err := m.seedPickupLocation(); err != nil {
		return fmt.Errorf("failed to seed pickup location: %w", err)
	}

	if err := m.seedDeliveryZones(); err != nil {
		return fmt.Errorf("failed to seed delivery zones: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

func (m *Migration) seedAdminCustomer() error {
	log.Println("👤 Seeding admin account...")

	var existing customer.Customer
	result := m.db.Where("email = ?", "admin@thespicerackatl.com").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Admin account already exists with ID: %s", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("ChangeMe!2024"), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := customer.Customer{
		Email:    "admin@thespicerackatl.com",
		Password: string(hashedPassword),
		FullName: "Spice Rack Admin",
		Role:     customer.RoleAdmin,
		IsActive: true,
	}

	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Println("✅ Created admin account: admin@thespicerackatl.com")
	return nil
}

func (m *Migration) seedMenuItems() error {
	log.Println("🍲 Seeding menu items...")

	var count int64
	m.db.Model(&menu.MenuItem{}).Count(&count)
	if count > 0 {
		log.Println("⏭️ Menu items already exist")
		return nil
	}

	price8 := func(v int64) *int64 { return &v }

	items := []menu.MenuItem{
		{
			Name:           "Jollof Rice",
			Description:    "Smoky long-grain rice simmered in a rich tomato and pepper base.",
			Category:       menu.CategoryEntree,
			HasSizeOptions: true,
			Price8oz:       price8(1200),
			Price16oz:      price8(2200),
			SpiceLevel:     2,
			DietaryTags:    "vegan,gluten-free",
			IsActive:       true,
			IsPopular:      true,
			SortOrder:      1,
		},
		{
			Name:           "Egusi Soup",
			Description:    "Ground melon seed soup with spinach, served with assorted proteins.",
			Category:       menu.CategoryEntree,
			HasSizeOptions: true,
			Price8oz:       price8(1400),
			Price16oz:      price8(2600),
			SpiceLevel:     3,
			IsActive:       true,
			IsPopular:      true,
			SortOrder:      2,
		},
		{
			Name:           "Suya Skewers",
			Description:    "Grilled beef skewers dusted with spicy yaji peanut seasoning.",
			Category:       menu.CategorySide,
			HasSizeOptions: false,
			SinglePrice:    price8(1500),
			SpiceLevel:     4,
			IsActive:       true,
			SortOrder:      3,
		},
		{
			Name:           "Plantains",
			Description:    "Sweet fried plantains, caramelized at the edges.",
			Category:       menu.CategorySide,
			HasSizeOptions: true,
			Price8oz:       price8(700),
			Price16oz:      price8(1300),
			SpiceLevel:     0,
			DietaryTags:    "vegan,gluten-free",
			IsActive:       true,
			SortOrder:      4,
		},
		{
			Name:           "Zobo",
			Description:    "Chilled hibiscus drink infused with ginger and pineapple.",
			Category:       menu.CategoryBeverage,
			HasSizeOptions: false,
			SinglePrice:    price8(600),
			SpiceLevel:     0,
			DietaryTags:    "vegan",
			IsActive:       true,
			SortOrder:      5,
		},
	}

	for _, item := range items {
		if err := m.db.Create(&item).Error; err != nil {
			log.Printf("⚠️ Failed to create menu item %s: %v", item.Name, err)
		} else {
			log.Printf("✅ Created menu item: %s", item.Name)
		}
	}

	return nil
}

func (m *Migration) seedPickupLocation() error {
	log.Println("📍 Seeding pickup location...")

	var count int64
	m.db.Model(&order.PickupLocation{}).Count(&count)
	if count > 0 {
		log.Println("⏭️ Pickup locations already exist")
		return nil
	}

	loc := order.PickupLocation{
		Name:       "Ponce City Market",
		Address:    "675 Ponce De Leon Ave NE",
		City:       "Atlanta",
		State:      "GA",
		ZipCode:    "30308",
		PickupTime: "5:00 PM - 7:00 PM",
		IsActive:   true,
		SortOrder:  1,
	}

	if err := m.db.Create(&loc).Error; err != nil {
		return fmt.Errorf("failed to create pickup location: %w", err)
	}

	log.Printf("✅ Created pickup location: %s", loc.Name)
	return nil
}

func (m *Migration) seedDeliveryZones() error {
	log.Println("🚚 Seeding delivery zones...")

	var count int64
	m.db.Model(&customer.DeliveryZone{}).Count(&count)
	if count > 0 {
		log.Println("⏭️ Delivery zones already exist")
		return nil
	}

	zones := []customer.DeliveryZone{
		{ZipCode: "30308", Area: "Midtown", DeliveryFee: 500, IsActive: true},
		{ZipCode: "30309", Area: "Midtown", DeliveryFee: 500, IsActive: true},
		{ZipCode: "30312", Area: "Old Fourth Ward", DeliveryFee: 500, IsActive: true},
		{ZipCode: "30306", Area: "Virginia-Highland", DeliveryFee: 700, IsActive: true},
		{ZipCode: "30307", Area: "Inman Park", DeliveryFee: 700, IsActive: true},
		{ZipCode: "30030", Area: "Decatur", DeliveryFee: 900, IsActive: true},
	}

	for _, zone := range zones {
		if err := m.db.Create(&zone).Error; err != nil {
			log.Printf("⚠️ Failed to create delivery zone %s: %v", zone.ZipCode, err)
		} else {
			log.Printf("✅ Created delivery zone: %s (%s)", zone.ZipCode, zone.Area)
		}
	}

	return nil
}

// DropAllTables drops all tables (use with extreme caution)
func (m *Migration) DropAllTables() error {
	log.Println("⚠️ WARNING: Dropping all database tables...")

	// Reverse dependency order
	tables := []string{
		"order_status_history",
		"order_items",
		"orders",
		"discount_codes",
		"pickup_locations",
		"weekly_menus",
		"menu_items",
		"delivery_zones",
		"customer_addresses",
		"customers",
	}

	for _, table := range tables {
		if err := m.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			log.Printf("⚠️ Failed to drop table %s: %v", table, err)
		} else {
			log.Printf("🗑️ Dropped table: %s", table)
		}
	}

	log.Println("✅ All tables dropped successfully")
	return nil
}

// GetTableInfo returns information about database tables
func (m *Migration) GetTableInfo() error {
	var tables []string

	if err := m.db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public' ORDER BY tablename").Scan(&tables).Error; err != nil {
		return err
	}

	log.Println("📊 Database Tables Information:")
	log.Println("================================")

	totalRecords := int64(0)
	for _, table := range tables {
		var count int64
		m.db.Table(table).Count(&count)
		totalRecords += count

		status := "✅"
		if count == 0 {
			status = "📭"
		}

		log.Printf("%s %-25s | %d records", status, table, count)
	}

	log.Println("================================")
	log.Printf("📈 Total records across all tables: %d", totalRecords)
	log.Printf("🗂️ Total tables: %d", len(tables))

	return nil
}
