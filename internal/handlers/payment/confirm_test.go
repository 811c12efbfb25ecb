package payment

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"
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
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.UserAddress{},
		&models.Order{},
		&models.OrderItem{},
	))
	return db
}

// seedCheckout creates a user with a two-unit cart line and a default
// shipping address, returning the user id.
func seedCheckout(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()

	user := models.User{Email: email, FirstName: "Jane", LastName: "Doe"}
	require.NoError(t, db.Create(&user).Error)

	product := models.Product{Name: "Shea butter", Price: 10.00, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	require.NoError(t, db.Create(&models.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
		UnitPrice: 10.00,
	}).Error)

	require.NoError(t, db.Create(&models.UserAddress{
		UserID:    user.ID,
		Type:      "shipping",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "123456",
		Address:   "1 Main St",
		Country:   "BE",
		IsDefault: true,
	}).Error)

	return user.ID
}

func succeededIntent(id string, amount int64) *stripe.PaymentIntent {
	return &stripe.PaymentIntent{
		ID:     id,
		Status: stripe.PaymentIntentStatusSucceeded,
		Amount: amount,
	}
}

func TestConfirmPaymentCreatesOrder(t *testing.T) {
	db := newTestDB(t)
	buyerID := seedCheckout(t, db, "jane@example.com")
	gw := &fakeGateway{retrieveResp: succeededIntent("pi_order", 2000)}

	w := performJSONAs(ConfirmPayment(db, gw, nil, testConfig()), buyerID,
		map[string]interface{}{"paymentIntentId": "pi_order"})

	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("payment_intent_id = ?", "pi_order").First(&order).Error)
	assert.Equal(t, buyerID, order.UserID)
	assert.Equal(t, 20.00, order.TotalAmount)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "1 Main St", order.ShippingAddressLine1)
	assert.Equal(t, "BE", order.ShippingCountry)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 10.00, order.Items[0].UnitPrice)
	assert.Equal(t, 20.00, order.Items[0].TotalPrice)
	assert.Equal(t, "Shea butter", order.Items[0].ProductName)

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", buyerID).Count(&cartCount)
	assert.Zero(t, cartCount, "cart should be cleared after checkout")
}

func TestConfirmPaymentTwiceReturnsExistingOrder(t *testing.T) {
	db := newTestDB(t)
	buyerID := seedCheckout(t, db, "jane@example.com")
	gw := &fakeGateway{retrieveResp: succeededIntent("pi_repeat", 2000)}
	handler := ConfirmPayment(db, gw, nil, testConfig())

	w := performJSONAs(handler, buyerID, map[string]interface{}{"paymentIntentId": "pi_repeat"})
	require.Equal(t, http.StatusOK, w.Code)

	w = performJSONAs(handler, buyerID, map[string]interface{}{"paymentIntentId": "pi_repeat"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"already_processed":true`)

	var orderCount int64
	db.Model(&models.Order{}).Where("payment_intent_id = ?", "pi_repeat").Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
}

func TestConfirmPaymentRejectsForeignIntent(t *testing.T) {
	db := newTestDB(t)
	buyerID := seedCheckout(t, db, "jane@example.com")
	gw := &fakeGateway{retrieveResp: succeededIntent("pi_shared", 2000)}
	handler := ConfirmPayment(db, gw, nil, testConfig())

	w := performJSONAs(handler, buyerID, map[string]interface{}{"paymentIntentId": "pi_shared"})
	require.Equal(t, http.StatusOK, w.Code)

	other := models.User{Email: "mallory@example.com"}
	require.NoError(t, db.Create(&other).Error)

	w = performJSONAs(handler, other.ID, map[string]interface{}{"paymentIntentId": "pi_shared"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "1 Main St")
	assert.NotContains(t, w.Body.String(), "already_processed")

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(1), orderCount)
}

func TestPaymentIntentIDUniqueIndex(t *testing.T) {
	db := newTestDB(t)

	first := models.Order{OrderNumber: "ORD-AAAA1111", UserID: 1, TotalAmount: 10, PaymentIntentID: "pi_dup"}
	require.NoError(t, db.Create(&first).Error)

	second := models.Order{OrderNumber: "ORD-BBBB2222", UserID: 2, TotalAmount: 10, PaymentIntentID: "pi_dup"}
	err := db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
