package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"selta_back_end/internal/models"
)

// newTestDB opens a throwaway in-memory database with the same error
// translation the production Postgres connection uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.UserAddress{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestAddToCartAccumulatesQuantityKeepingFirstPrice(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Email: "jane@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	product := models.Product{Name: "Argan oil", Price: 10.00, IsActive: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	handler := AddToCart(db)

	w := postJSON(t, handler, fmt.Sprintf(`{"product_id": %d, "quantity": 2}`, product.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("first add: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	// A later price change must not touch the price the line was added at.
	if err := db.Model(&product).Update("price", 15.00).Error; err != nil {
		t.Fatalf("update price: %v", err)
	}

	w = postJSON(t, handler, fmt.Sprintf(`{"product_id": %d, "quantity": 1}`, product.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("second add: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var items []models.CartItem
	if err := db.Where("user_id = ?", user.ID).Find(&items).Error; err != nil {
		t.Fatalf("load cart: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected a single cart row, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", items[0].Quantity)
	}
	if items[0].UnitPrice != 10.00 {
		t.Errorf("expected unit price 10.00 from the first add, got %.2f", items[0].UnitPrice)
	}
}

func TestCreateAddressUnsetsPreviousDefault(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Email: "jane@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	handler := CreateAddress(db)
	body := `{"type": "shipping", "first_name": "Jane", "last_name": "Doe", "phone": "123456", "address": "%s", "country": "BE", "is_default": true}`

	w := postJSON(t, handler, fmt.Sprintf(body, "1 Main St"))
	if w.Code != http.StatusOK {
		t.Fatalf("first address: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	w = postJSON(t, handler, fmt.Sprintf(body, "2 Side St"))
	if w.Code != http.StatusOK {
		t.Fatalf("second address: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var defaults []models.UserAddress
	if err := db.Where("user_id = ? AND type = ? AND is_default = ?", user.ID, "shipping", true).
		Find(&defaults).Error; err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if len(defaults) != 1 {
		t.Fatalf("expected exactly one default shipping address, got %d", len(defaults))
	}
	if defaults[0].Address != "2 Side St" {
		t.Errorf("expected the newest address to hold the default, got %q", defaults[0].Address)
	}
}
