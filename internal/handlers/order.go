package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"selta_back_end/internal/middleware"
	"selta_back_end/internal/models"
)

type orderStatusRequest struct {
	Status string `json:"status"`
}

type trackingRequest struct {
	TrackingNumber    *string `json:"tracking_number"`
	Carrier           *string `json:"carrier"`
	EstimatedDelivery *string `json:"estimated_delivery"`
}

// GET /api/orders
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		var orders []models.Order
		err := db.Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error
		if err != nil {
			log.Println("❌ Orders error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// GET /api/orders/:orderId
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		var order models.Order
		err := db.Preload("Items").
			Where("id = ? AND user_id = ?", c.Param("orderId"), userID).
			First(&order).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// adminOrderView flattens the order for the delivery dashboard.
type adminOrderView struct {
	ID             uint              `json:"id"`
	OrderNumber    string            `json:"order_number"`
	Status         string            `json:"status"`
	Total          float64           `json:"total"`
	OrderDate      time.Time         `json:"order_date"`
	TrackingNumber *string           `json:"tracking_number"`
	ShippedAt      *time.Time        `json:"shipped_at"`
	DeliveredAt    *time.Time        `json:"delivered_at"`
	CustomerName   string            `json:"customer_name"`
	CustomerEmail  string            `json:"customer_email"`
	CustomerPhone  *string           `json:"customer_phone"`
	Address        adminOrderAddress `json:"address"`
	Items          []adminOrderItem  `json:"items"`
}

type adminOrderAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type adminOrderItem struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// GET /api/admin/orders
func AdminListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}

		scopes := adminOrderScopes(c.Query("status"), c.Query("search"))

		var total int64
		err := db.Model(&models.Order{}).
			Joins("LEFT JOIN users ON users.id = orders.user_id").
			Scopes(scopes...).
			Count(&total).Error
		if err != nil {
			log.Println("❌ Admin orders error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		var rows []struct {
			models.Order
			CustomerEmail string
			CustomerPhone *string
		}
		err = db.Model(&models.Order{}).
			Select("orders.*, users.email AS customer_email, users.phone AS customer_phone").
			Joins("LEFT JOIN users ON users.id = orders.user_id").
			Scopes(scopes...).
			Order("orders.created_at DESC").
			Limit(limit).Offset(offset).
			Scan(&rows).Error
		if err != nil {
			log.Println("❌ Admin orders error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		views := make([]adminOrderView, 0, len(rows))
		for _, row := range rows {
			var items []models.OrderItem
			db.Where("order_id = ?", row.Order.ID).Find(&items)

			view := adminOrderView{
				ID:             row.Order.ID,
				OrderNumber:    row.OrderNumber,
				Status:         row.Status,
				Total:          row.TotalAmount,
				OrderDate:      row.Order.CreatedAt,
				TrackingNumber: row.TrackingNumber,
				ShippedAt:      row.ShippedAt,
				DeliveredAt:    row.DeliveredAt,
				CustomerName:   strings.TrimSpace(row.ShippingFirstName + " " + row.ShippingLastName),
				CustomerEmail:  row.CustomerEmail,
				CustomerPhone:  row.CustomerPhone,
				Address: adminOrderAddress{
					Street:  row.ShippingAddressLine1,
					City:    row.ShippingCity,
					State:   row.ShippingState,
					ZipCode: row.ShippingPostalCode,
					Country: row.ShippingCountry,
				},
				Items: make([]adminOrderItem, 0, len(items)),
			}
			for _, item := range items {
				view.Items = append(view.Items, adminOrderItem{
					ID:       item.ID,
					Name:     item.ProductName,
					Quantity: item.Quantity,
					Price:    item.UnitPrice,
				})
			}
			views = append(views, view)
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": views,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// adminOrderScopes builds the status and search filters as composable scopes
// so the list and count queries stay in sync.
func adminOrderScopes(status, search string) []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB
	if status != "" && status != "all" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("orders.status = ?", status)
		})
	}
	if search != "" {
		pattern := "%" + search + "%"
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"orders.order_number ILIKE ? OR CONCAT(orders.shipping_first_name, ' ', orders.shipping_last_name) ILIKE ? OR users.email ILIKE ?",
				pattern, pattern, pattern,
			)
		})
	}
	return scopes
}

// PUT /api/admin/orders/:orderId/status
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req orderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !models.ValidOrderStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		var order models.Order
		if err := db.First(&order, c.Param("orderId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		now := time.Now()
		order.Status = req.Status
		switch req.Status {
		case models.OrderStatusShipped:
			order.ShippedAt = &now
		case models.OrderStatusDelivered:
			order.DeliveredAt = &now
		}

		if err := db.Save(&order).Error; err != nil {
			log.Println("❌ Order status error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// PUT /api/admin/orders/:orderId/tracking
func UpdateOrderTracking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req trackingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		var order models.Order
		if err := db.First(&order, c.Param("orderId")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		order.TrackingNumber = req.TrackingNumber

		var notes strings.Builder
		if order.AdminNotes != nil {
			notes.WriteString(*order.AdminNotes)
		}
		if req.Carrier != nil {
			notes.WriteString("\nCarrier: " + *req.Carrier)
		}
		if req.EstimatedDelivery != nil {
			notes.WriteString("\nEstimated Delivery: " + *req.EstimatedDelivery)
		}
		if notes.Len() > 0 {
			joined := notes.String()
			order.AdminNotes = &joined
		}

		if err := db.Save(&order).Error; err != nil {
			log.Println("❌ Order tracking error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tracking information"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
