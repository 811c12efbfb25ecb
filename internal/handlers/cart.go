package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"selta_back_end/internal/middleware"
	"selta_back_end/internal/models"
)

type addToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

// cartItemView is the shape the storefront expects: product fields at the top
// level with the current price, not the price captured at add time.
type cartItemView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	Image       string    `json:"image"`
	CartItemID  uint      `json:"cart_item_id"`
	AddedAt     time.Time `json:"added_at"`
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		var rows []struct {
			models.CartItem
			ProductName        string
			ProductDescription string
			ProductImage       string
			CurrentPrice       float64
		}
		err := db.Table("cart_items").
			Select("cart_items.*, products.name AS product_name, products.description AS product_description, products.image AS product_image, products.price AS current_price").
			Joins("JOIN products ON products.id = cart_items.product_id").
			Where("cart_items.user_id = ? AND products.is_active = ?", userID, true).
			Order("cart_items.created_at DESC").
			Scan(&rows).Error
		if err != nil {
			log.Println("❌ Cart error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to fetch cart items"})
			return
		}

		items := make([]cartItemView, 0, len(rows))
		for _, row := range rows {
			items = append(items, cartItemView{
				ID:          row.ProductID,
				Name:        row.ProductName,
				Description: row.ProductDescription,
				Price:       row.CurrentPrice,
				Quantity:    row.Quantity,
				Image:       row.ProductImage,
				CartItemID:  row.CartItem.ID,
				AddedAt:     row.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{"data": items, "error": nil})
	}
}

// POST /api/cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Product ID is required"})
			return
		}
		if req.Quantity <= 0 {
			req.Quantity = 1
		}

		var product models.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Product not found"})
			return
		}
		if !product.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Product is not available"})
			return
		}

		userID := middleware.CurrentUserID(c)

		var item models.CartItem
		err := db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
		if err == nil {
			item.Quantity += req.Quantity
			if err := db.Save(&item).Error; err != nil {
				log.Println("❌ Cart update error:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Cart item updated", "cart_item": item, "product": product}, "error": nil})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("❌ Cart error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to add item to cart"})
			return
		}

		item = models.CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
			UnitPrice: product.Price,
		}
		// Concurrent adds race the existence check; fold them into the row.
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("cart_items.quantity + ?", req.Quantity)}),
		}).Create(&item).Error
		if err != nil {
			log.Println("❌ Cart insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to add item to cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Item added to cart", "cart_item": item, "product": product}, "error": nil})
	}
}

// PUT /api/cart/:product_id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Valid quantity is required"})
			return
		}

		userID := middleware.CurrentUserID(c)

		var item models.CartItem
		err := db.Where("user_id = ? AND product_id = ?", userID, c.Param("product_id")).First(&item).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Cart item not found"})
			return
		}

		item.Quantity = req.Quantity
		if err := db.Save(&item).Error; err != nil {
			log.Println("❌ Cart update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": item, "error": nil})
	}
}

// DELETE /api/cart/:product_id
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		result := db.Where("user_id = ? AND product_id = ?", userID, c.Param("product_id")).
			Delete(&models.CartItem{})
		if result.Error != nil {
			log.Println("❌ Cart remove error:", result.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to remove item from cart"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Item removed from cart"}, "error": nil})
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		result := db.Where("user_id = ?", userID).Delete(&models.CartItem{})
		if result.Error != nil {
			log.Println("❌ Cart clear error:", result.Error)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Cart cleared", "items_removed": result.RowsAffected}, "error": nil})
	}
}
