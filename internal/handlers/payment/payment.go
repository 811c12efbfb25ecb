package payment

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"gorm.io/gorm"

	"selta_back_end/internal/config"
	"selta_back_end/internal/middleware"
	"selta_back_end/internal/models"
	"selta_back_end/internal/utils"
)

type createIntentRequest struct {
	Amount          float64          `json:"amount"`
	Currency        string           `json:"currency"`
	CartItems       []checkoutItem   `json:"cartItems"`
	ShippingAddress *checkoutAddress `json:"shippingAddress"`
}

type confirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// POST /api/stripe/create-payment-intent
func CreatePaymentIntent(gw Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 || len(req.CartItems) == 0 || req.ShippingAddress == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required payment information"})
			return
		}
		if req.Currency == "" {
			req.Currency = "usd"
		}

		condensedItems := condenseItems(req.CartItems)
		condensedShipping := condenseShipping(*req.ShippingAddress)
		if !fitsMetadata(condensedItems) || !fitsMetadata(condensedShipping) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment metadata too large"})
			return
		}

		itemsJSON, _ := json.Marshal(condensedItems)
		shippingJSON, _ := json.Marshal(condensedShipping)
		userID := middleware.CurrentUserID(c)

		params := &stripe.PaymentIntentParams{
			Amount:   stripe.Int64(toMinorUnits(req.Amount)),
			Currency: stripe.String(strings.ToLower(req.Currency)),
			AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
				Enabled: stripe.Bool(true),
			},
		}
		params.AddMetadata("userId", strconv.FormatUint(uint64(userID), 10))
		params.AddMetadata("cartItems", string(itemsJSON))
		params.AddMetadata("shippingAddress", string(shippingJSON))
		params.AddMetadata("itemCount", strconv.Itoa(len(req.CartItems)))

		intent, err := gw.CreateIntent(params)
		if err != nil {
			log.Println("❌ Payment intent error:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment intent"})
			return
		}

		log.Println("💳 Payment intent created:", intent.ID)
		c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret, "paymentIntentId": intent.ID})
	}
}

// POST /api/stripe/confirm-payment
//
// Confirming the same intent twice returns the order created the first time
// instead of creating a duplicate.
func ConfirmPayment(db *gorm.DB, gw Gateway, mailer *utils.Mailer, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req confirmRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.PaymentIntentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment intent ID is required"})
			return
		}

		intent, err := gw.RetrieveIntent(req.PaymentIntentID)
		if err != nil {
			log.Println("❌ Payment retrieve error:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to confirm payment"})
			return
		}
		if intent.Status != stripe.PaymentIntentStatusSucceeded {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment not completed"})
			return
		}

		userID := middleware.CurrentUserID(c)

		var existing models.Order
		if err := db.Preload("Items").Where("payment_intent_id = ?", req.PaymentIntentID).First(&existing).Error; err == nil {
			// The intent was already consumed. Only the buyer gets the order back;
			// anyone else replaying the id learns nothing.
			if existing.UserID != userID {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "orderId": existing.ID, "order": existing, "already_processed": true})
			return
		}

		var cartRows []struct {
			Quantity     int
			UnitPrice    float64
			ProductID    uint
			ProductName  string
			ProductImage string
		}
		err = db.Table("cart_items").
			Select("cart_items.quantity, cart_items.unit_price, products.id AS product_id, products.name AS product_name, products.image AS product_image").
			Joins("JOIN products ON products.id = cart_items.product_id").
			Where("cart_items.user_id = ? AND products.is_active = ?", userID, true).
			Order("cart_items.created_at DESC").
			Scan(&cartRows).Error
		if err != nil {
			log.Println("❌ Confirm payment error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
			return
		}

		var shipping models.UserAddress
		err = db.Where("user_id = ? AND type = ? AND is_default = ?", userID, "shipping", true).
			First(&shipping).Error
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No shipping address found"})
			return
		}

		addressJSON, _ := json.Marshal(shipping)
		orderTotal := float64(intent.Amount) / 100

		order := models.Order{
			OrderNumber:          "ORD-" + strings.ToUpper(uuid.NewString()[:8]),
			UserID:               userID,
			TotalAmount:          orderTotal,
			Subtotal:             orderTotal,
			PaymentIntentID:      req.PaymentIntentID,
			ShippingAddress:      string(addressJSON),
			Status:               models.OrderStatusProcessing,
			ShippingFirstName:    shipping.FirstName,
			ShippingLastName:     shipping.LastName,
			ShippingPhone:        shipping.Phone,
			ShippingAddressLine1: shipping.Address,
			ShippingCity:         derefOr(shipping.Region, "N/A"),
			ShippingState:        derefOr(shipping.County, "N/A"),
			ShippingPostalCode:   "00000",
			ShippingCountry:      shipping.Country,
		}
		order.BillingFirstName = order.ShippingFirstName
		order.BillingLastName = order.ShippingLastName
		order.BillingPhone = order.ShippingPhone
		order.BillingAddressLine1 = order.ShippingAddressLine1
		order.BillingCity = order.ShippingCity
		order.BillingState = order.ShippingState
		order.BillingPostalCode = order.ShippingPostalCode
		order.BillingCountry = order.ShippingCountry

		for _, row := range cartRows {
			order.Items = append(order.Items, models.OrderItem{
				ProductID:    row.ProductID,
				Quantity:     row.Quantity,
				UnitPrice:    row.UnitPrice,
				TotalPrice:   row.UnitPrice * float64(row.Quantity),
				ProductName:  row.ProductName,
				ProductImage: row.ProductImage,
			})
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			// The unique index fires when two confirms race; hand back the winner,
			// but only to the user who owns it.
			var winner models.Order
			if lookupErr := db.Preload("Items").Where("payment_intent_id = ?", req.PaymentIntentID).First(&winner).Error; lookupErr == nil {
				if winner.UserID != userID {
					c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"success": true, "orderId": winner.ID, "order": winner, "already_processed": true})
				return
			}
			log.Println("❌ Order create error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment"})
			return
		}

		log.Println("✅ Order created:", order.OrderNumber)

		var buyer models.User
		if err := db.First(&buyer, userID).Error; err == nil {
			go sendConfirmation(mailer, cfg, buyer.Email, order)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "orderId": order.ID, "order": order})
	}
}

func sendConfirmation(mailer *utils.Mailer, cfg config.Config, to string, order models.Order) {
	if mailer == nil {
		return
	}
	pdf, err := utils.GenerateInvoicePDF(cfg.FrontendURL, order)
	if err != nil {
		log.Println("⚠️ Invoice generation failed:", err)
		pdf = nil
	}
	if err := mailer.SendOrderConfirmation(to, order, pdf); err != nil {
		log.Println("⚠️ Order confirmation email failed:", err)
		return
	}
	log.Println("📧 Order confirmation sent to", to)
}

func derefOr(s *string, fallback string) string {
	if s != nil && *s != "" {
		return *s
	}
	return fallback
}
