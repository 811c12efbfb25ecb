package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"selta_back_end/internal/middleware"
	"selta_back_end/internal/models"
)

type userRoleRequest struct {
	Role string `json:"role"`
}

type adminUserView struct {
	ID          uint      `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	LastLogin   time.Time `json:"lastLogin"`
	OrdersCount int       `json:"ordersCount"`
	TotalSpent  float64   `json:"totalSpent"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GET /api/admin/users
func AdminListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		currentUserID := middleware.CurrentUserID(c)

		var rows []struct {
			models.User
			OrdersCount   int
			LastOrderDate *time.Time
			TotalSpent    float64
		}
		err := db.Model(&models.User{}).
			Select("users.*, COUNT(orders.id) AS orders_count, MAX(orders.created_at) AS last_order_date, COALESCE(SUM(orders.total_amount), 0) AS total_spent").
			Joins("LEFT JOIN orders ON orders.user_id = users.id").
			Where("users.id != ?", currentUserID).
			Group("users.id").
			Order("users.created_at DESC").
			Scan(&rows).Error
		if err != nil {
			log.Println("❌ Admin users error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}

		users := make([]adminUserView, 0, len(rows))
		for _, row := range rows {
			lastLogin := row.User.CreatedAt
			if row.LastOrderDate != nil {
				lastLogin = *row.LastOrderDate
			}
			users = append(users, adminUserView{
				ID:          row.User.ID,
				FirstName:   row.FirstName,
				LastName:    row.LastName,
				Email:       row.Email,
				Role:        row.Role,
				Status:      "active",
				LastLogin:   lastLogin,
				OrdersCount: row.OrdersCount,
				TotalSpent:  row.TotalSpent,
				CreatedAt:   row.User.CreatedAt,
				UpdatedAt:   row.User.UpdatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
	}
}

// PUT /api/admin/users/:userId/role
func UpdateUserRole(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if uint(targetID) == middleware.CurrentUserID(c) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot change your own role"})
			return
		}

		var req userRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil || (req.Role != "user" && req.Role != "admin") {
			c.JSON(http.StatusBadRequest, gin.H{"error": `Invalid role. Must be "user" or "admin"`})
			return
		}

		var user models.User
		if err := db.First(&user, targetID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		user.Role = req.Role
		if err := db.Save(&user).Error; err != nil {
			log.Println("❌ User role error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully", "user": user.Public()})
	}
}
