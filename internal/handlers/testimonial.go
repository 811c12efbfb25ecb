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

type submitTestimonialRequest struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Rating    int    `json:"rating"`
	ProductID *uint  `json:"product_id"`
}

type updateTestimonialRequest struct {
	Title   *string `json:"title"`
	Message *string `json:"message"`
	Rating  *int    `json:"rating"`
}

type testimonialStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

type testimonialFeaturedRequest struct {
	IsFeatured bool `json:"is_featured"`
}

// publicTestimonialView joins in the author and product for display.
type publicTestimonialView struct {
	ID                 uint      `json:"id"`
	Title              string    `json:"title"`
	Message            string    `json:"message"`
	Rating             int       `json:"rating"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	IsFeatured         bool      `json:"is_featured"`
	CreatedAt          time.Time `json:"created_at"`
	ProductID          *uint     `json:"product_id"`
	CustomerName       string    `json:"customer_name"`
	FirstName          string    `json:"first_name"`
	ProductName        *string   `json:"product_name"`
	ProductImage       *string   `json:"product_image"`
}

type ratingStats struct {
	AverageRating     float64 `json:"average_rating"`
	TotalReviews      int64   `json:"total_reviews"`
	FiveStar          int64   `json:"five_star"`
	FourStar          int64   `json:"four_star"`
	ThreeStar         int64   `json:"three_star"`
	TwoStar           int64   `json:"two_star"`
	OneStar           int64   `json:"one_star"`
	VerifiedPurchases int64   `json:"verified_purchases"`
}

func pagination(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

const publicTestimonialSelect = "testimonials.id, testimonials.title, testimonials.message, testimonials.rating, " +
	"testimonials.is_verified_purchase, testimonials.is_featured, testimonials.created_at, testimonials.product_id, " +
	"CONCAT(users.first_name, ' ', users.last_name) AS customer_name, users.first_name, " +
	"products.name AS product_name, products.image AS product_image"

// GET /api/testimonials
func ListTestimonials(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c, 50)

		query := db.Model(&models.Testimonial{}).
			Joins("JOIN users ON users.id = testimonials.user_id").
			Joins("LEFT JOIN products ON products.id = testimonials.product_id").
			Where("testimonials.status = ?", models.TestimonialStatusApproved)
		if productID := c.Query("product_id"); productID != "" {
			query = query.Where("testimonials.product_id = ?", productID)
		}
		if rating := c.Query("rating"); rating != "" {
			query = query.Where("testimonials.rating = ?", rating)
		}
		if c.Query("featured_only") == "true" {
			query = query.Where("testimonials.is_featured = ?", true)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			log.Println("❌ Testimonials error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": []publicTestimonialView{}, "error": "Failed to fetch testimonials"})
			return
		}

		var views []publicTestimonialView
		err := query.Select(publicTestimonialSelect).
			Order("testimonials.is_featured DESC, testimonials.created_at DESC").
			Limit(limit).Offset(offset).
			Scan(&views).Error
		if err != nil {
			log.Println("❌ Testimonials error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": []publicTestimonialView{}, "error": "Failed to fetch testimonials"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": views, "total": total, "limit": limit, "offset": offset, "error": nil})
	}
}

// GET /api/products/:id/testimonials
func ProductTestimonials(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c, 20)
		productID := c.Param("id")

		var views []publicTestimonialView
		err := db.Model(&models.Testimonial{}).
			Select(publicTestimonialSelect).
			Joins("JOIN users ON users.id = testimonials.user_id").
			Joins("LEFT JOIN products ON products.id = testimonials.product_id").
			Where("testimonials.product_id = ? AND testimonials.status = ?", productID, models.TestimonialStatusApproved).
			Order("testimonials.is_featured DESC, testimonials.created_at DESC").
			Limit(limit).Offset(offset).
			Scan(&views).Error
		if err != nil {
			log.Println("❌ Product testimonials error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": []publicTestimonialView{}, "error": "Failed to fetch product testimonials"})
			return
		}

		stats, err := collectRatingStats(db.Where("product_id = ?", productID))
		if err != nil {
			log.Println("❌ Product testimonials error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": []publicTestimonialView{}, "error": "Failed to fetch product testimonials"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": views, "stats": stats, "error": nil})
	}
}

// GET /api/testimonials/stats
func TestimonialStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := db.Session(&gorm.Session{})
		if productID := c.Query("product_id"); productID != "" {
			scope = scope.Where("product_id = ?", productID)
		}

		stats, err := collectRatingStats(scope)
		if err != nil {
			log.Println("❌ Testimonial stats error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to fetch testimonial statistics"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": stats, "error": nil})
	}
}

func collectRatingStats(scope *gorm.DB) (ratingStats, error) {
	var stats ratingStats
	err := scope.Model(&models.Testimonial{}).
		Select("COALESCE(AVG(rating), 0) AS average_rating, COUNT(*) AS total_reviews, "+
			"COUNT(CASE WHEN rating = 5 THEN 1 END) AS five_star, "+
			"COUNT(CASE WHEN rating = 4 THEN 1 END) AS four_star, "+
			"COUNT(CASE WHEN rating = 3 THEN 1 END) AS three_star, "+
			"COUNT(CASE WHEN rating = 2 THEN 1 END) AS two_star, "+
			"COUNT(CASE WHEN rating = 1 THEN 1 END) AS one_star, "+
			"COUNT(CASE WHEN is_verified_purchase = true THEN 1 END) AS verified_purchases").
		Where("status = ?", models.TestimonialStatusApproved).
		Scan(&stats).Error
	return stats, err
}

// POST /api/testimonials
func SubmitTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitTestimonialRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" || req.Rating == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Title, message, and rating are required"})
			return
		}
		if req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Rating must be between 1 and 5"})
			return
		}

		userID := middleware.CurrentUserID(c)
		testimonial := models.Testimonial{
			UserID:    userID,
			ProductID: req.ProductID,
			Title:     req.Title,
			Message:   req.Message,
			Rating:    req.Rating,
			Status:    models.TestimonialStatusPending,
		}

		if req.ProductID != nil {
			var existing int64
			err := db.Model(&models.Testimonial{}).
				Where("user_id = ? AND product_id = ?", userID, *req.ProductID).
				Count(&existing).Error
			if err != nil {
				log.Println("❌ Testimonial submit error:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to submit testimonial"})
				return
			}
			if existing > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "You have already reviewed this product"})
				return
			}

			// Verified purchase badge: the product appears in a delivered order.
			var purchased int64
			db.Model(&models.OrderItem{}).
				Joins("JOIN orders ON orders.id = order_items.order_id").
				Where("orders.user_id = ? AND order_items.product_id = ? AND orders.status IN ?",
					userID, *req.ProductID, []string{models.OrderStatusDelivered, "completed"}).
				Count(&purchased)
			testimonial.IsVerifiedPurchase = purchased > 0
		}

		if err := db.Create(&testimonial).Error; err != nil {
			log.Println("❌ Testimonial submit error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to submit testimonial"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":    testimonial,
			"message": "Testimonial submitted successfully and is pending approval",
			"error":   nil,
		})
	}
}

// GET /api/user/testimonials
func MyTestimonials(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		var rows []struct {
			models.Testimonial
			ProductName  *string `json:"product_name"`
			ProductImage *string `json:"product_image"`
		}
		err := db.Model(&models.Testimonial{}).
			Select("testimonials.*, products.name AS product_name, products.image AS product_image").
			Joins("LEFT JOIN products ON products.id = testimonials.product_id").
			Where("testimonials.user_id = ?", userID).
			Order("testimonials.created_at DESC").
			Scan(&rows).Error
		if err != nil {
			log.Println("❌ User testimonials error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to fetch your testimonials"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": rows, "error": nil})
	}
}

// PUT /api/user/testimonials/:id
func UpdateMyTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateTestimonialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Invalid request body"})
			return
		}
		if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Rating must be between 1 and 5"})
			return
		}

		userID := middleware.CurrentUserID(c)

		var testimonial models.Testimonial
		err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&testimonial).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Testimonial not found"})
			return
		}
		if testimonial.Status != models.TestimonialStatusPending {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Can only edit pending testimonials"})
			return
		}

		if req.Title != nil {
			testimonial.Title = *req.Title
		}
		if req.Message != nil {
			testimonial.Message = *req.Message
		}
		if req.Rating != nil {
			testimonial.Rating = *req.Rating
		}

		if err := db.Save(&testimonial).Error; err != nil {
			log.Println("❌ Testimonial update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to update testimonial"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": testimonial, "message": "Testimonial updated successfully", "error": nil})
	}
}

// DELETE /api/user/testimonials/:id
func DeleteMyTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		var testimonial models.Testimonial
		err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&testimonial).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Testimonial not found"})
			return
		}
		if testimonial.Status != models.TestimonialStatusPending {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Can only delete pending testimonials"})
			return
		}

		if err := db.Delete(&testimonial).Error; err != nil {
			log.Println("❌ Testimonial delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to delete testimonial"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted successfully", "error": nil})
	}
}

// GET /api/admin/testimonials
func AdminListTestimonials(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := pagination(c, 50)

		query := db.Model(&models.Testimonial{}).
			Joins("JOIN users ON users.id = testimonials.user_id").
			Joins("LEFT JOIN products ON products.id = testimonials.product_id")
		if status := c.Query("status"); status != "" && status != "all" {
			query = query.Where("testimonials.status = ?", status)
		}
		if rating := c.Query("rating"); rating != "" {
			query = query.Where("testimonials.rating = ?", rating)
		}
		if productID := c.Query("product_id"); productID != "" {
			query = query.Where("testimonials.product_id = ?", productID)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			query = query.Where(
				"testimonials.title ILIKE ? OR testimonials.message ILIKE ? OR CONCAT(users.first_name, ' ', users.last_name) ILIKE ? OR products.name ILIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			log.Println("❌ Admin testimonials error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to fetch testimonials"})
			return
		}

		var rows []struct {
			models.Testimonial
			CustomerName   string  `json:"customer_name"`
			CustomerEmail  string  `json:"customer_email"`
			ProductName    *string `json:"product_name"`
			ProductImage   *string `json:"product_image"`
			ApprovedByName *string `json:"approved_by_name"`
		}
		err := query.
			Select("testimonials.*, CONCAT(users.first_name, ' ', users.last_name) AS customer_name, "+
				"users.email AS customer_email, products.name AS product_name, products.image AS product_image, "+
				"approver.first_name AS approved_by_name").
			Joins("LEFT JOIN users approver ON approver.id = testimonials.approved_by").
			Order("CASE testimonials.status WHEN 'pending' THEN 1 WHEN 'approved' THEN 2 WHEN 'rejected' THEN 3 END, testimonials.created_at DESC").
			Limit(limit).Offset(offset).
			Scan(&rows).Error
		if err != nil {
			log.Println("❌ Admin testimonials error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to fetch testimonials"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": rows, "total": total, "limit": limit, "offset": offset, "error": nil})
	}
}

// PATCH /api/admin/testimonials/:id/status
func UpdateTestimonialStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req testimonialStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil || !models.ValidTestimonialStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Invalid status. Must be approved, rejected, or pending"})
			return
		}

		var testimonial models.Testimonial
		if err := db.First(&testimonial, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Testimonial not found"})
			return
		}

		testimonial.Status = req.Status
		if req.AdminNotes != nil {
			testimonial.AdminNotes = req.AdminNotes
		}
		if req.Status == models.TestimonialStatusApproved {
			now := time.Now()
			adminID := middleware.CurrentUserID(c)
			testimonial.ApprovedAt = &now
			testimonial.ApprovedBy = &adminID
		} else {
			testimonial.ApprovedAt = nil
			testimonial.ApprovedBy = nil
		}

		if err := db.Save(&testimonial).Error; err != nil {
			log.Println("❌ Testimonial status error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to update testimonial status"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": testimonial, "message": "Testimonial " + req.Status + " successfully", "error": nil})
	}
}

// PATCH /api/admin/testimonials/:id/featured
func UpdateTestimonialFeatured(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req testimonialFeaturedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Invalid request body"})
			return
		}

		// Only approved testimonials can be featured.
		var testimonial models.Testimonial
		err := db.Where("id = ? AND status = ?", c.Param("id"), models.TestimonialStatusApproved).
			First(&testimonial).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Testimonial not found or not approved"})
			return
		}

		testimonial.IsFeatured = req.IsFeatured
		if err := db.Save(&testimonial).Error; err != nil {
			log.Println("❌ Testimonial featured error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to update featured status"})
			return
		}

		verb := "unfeatured"
		if req.IsFeatured {
			verb = "featured"
		}
		c.JSON(http.StatusOK, gin.H{"data": testimonial, "message": "Testimonial " + verb + " successfully", "error": nil})
	}
}

// DELETE /api/admin/testimonials/:id
func AdminDeleteTestimonial(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var testimonial models.Testimonial
		if err := db.First(&testimonial, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Testimonial not found"})
			return
		}

		if err := db.Delete(&testimonial).Error; err != nil {
			log.Println("❌ Testimonial delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to delete testimonial"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": testimonial, "message": "Testimonial deleted successfully", "error": nil})
	}
}

// GET /api/admin/testimonials/dashboard
func TestimonialDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var overall struct {
			TotalTestimonials int64   `json:"total_testimonials"`
			PendingCount      int64   `json:"pending_count"`
			ApprovedCount     int64   `json:"approved_count"`
			RejectedCount     int64   `json:"rejected_count"`
			FeaturedCount     int64   `json:"featured_count"`
			AverageRating     float64 `json:"average_rating"`
			VerifiedPurchases int64   `json:"verified_purchases"`
		}
		err := db.Model(&models.Testimonial{}).
			Select("COUNT(*) AS total_testimonials, " +
				"COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_count, " +
				"COUNT(CASE WHEN status = 'approved' THEN 1 END) AS approved_count, " +
				"COUNT(CASE WHEN status = 'rejected' THEN 1 END) AS rejected_count, " +
				"COUNT(CASE WHEN is_featured = true THEN 1 END) AS featured_count, " +
				"COALESCE(AVG(rating), 0) AS average_rating, " +
				"COUNT(CASE WHEN is_verified_purchase = true THEN 1 END) AS verified_purchases").
			Scan(&overall).Error
		if err != nil {
			log.Println("❌ Testimonial dashboard error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to fetch dashboard statistics"})
			return
		}

		var recent struct {
			RecentTotal   int64 `json:"recent_total"`
			RecentPending int64 `json:"recent_pending"`
		}
		db.Model(&models.Testimonial{}).
			Select("COUNT(*) AS recent_total, COUNT(CASE WHEN status = 'pending' THEN 1 END) AS recent_pending").
			Where("created_at >= ?", time.Now().AddDate(0, 0, -30)).
			Scan(&recent)

		var distribution []struct {
			Rating int   `json:"rating"`
			Count  int64 `json:"count"`
		}
		db.Model(&models.Testimonial{}).
			Select("rating, COUNT(*) AS count").
			Where("status = ?", models.TestimonialStatusApproved).
			Group("rating").
			Order("rating DESC").
			Scan(&distribution)

		var topProducts []struct {
			ID               uint    `json:"id"`
			Name             string  `json:"name"`
			TestimonialCount int64   `json:"testimonial_count"`
			AverageRating    float64 `json:"average_rating"`
		}
		db.Model(&models.Product{}).
			Select("products.id, products.name, COUNT(testimonials.id) AS testimonial_count, COALESCE(AVG(testimonials.rating), 0) AS average_rating").
			Joins("LEFT JOIN testimonials ON testimonials.product_id = products.id AND testimonials.status = ?", models.TestimonialStatusApproved).
			Group("products.id, products.name").
			Having("COUNT(testimonials.id) > 0").
			Order("testimonial_count DESC, average_rating DESC").
			Limit(10).
			Scan(&topProducts)

		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{
				"overall":             overall,
				"recent":              recent,
				"rating_distribution": distribution,
				"top_products":        topProducts,
			},
			"error": nil,
		})
	}
}
