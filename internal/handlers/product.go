package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"selta_back_end/internal/models"
	"selta_back_end/internal/services"
)

type productRequest struct {
	Name          string   `json:"name"`
	Brand         string   `json:"brand"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	Description   string   `json:"description"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Rating        *float64 `json:"rating"`
	Reviews       *int     `json:"reviews"`
	IsActive      *bool    `json:"is_active"`
}

// GET /api/products
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Where("is_active = ?", true)
		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			log.Println("❌ Products error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": products, "error": nil})
	}
}

// GET /api/products/search
func SearchProducts(db *gorm.DB, es *elasticsearch.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Search query is required"})
			return
		}

		if es != nil {
			products, err := services.SearchProducts(es, q)
			if err == nil {
				c.JSON(http.StatusOK, gin.H{"data": products, "error": nil})
				return
			}
			log.Println("⚠️ Elasticsearch search failed, falling back to SQL:", err)
		}

		var products []models.Product
		pattern := "%" + q + "%"
		err := db.Where("is_active = ?", true).
			Where("name ILIKE ? OR brand ILIKE ? OR description ILIKE ?", pattern, pattern, pattern).
			Order("created_at DESC").
			Find(&products).Error
		if err != nil {
			log.Println("❌ Search error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": products, "error": nil})
	}
}

// GET /api/products/:id
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Where("is_active = ?", true).First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": product, "error": nil})
	}
}

// GET /api/admin/products
func AdminListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			log.Println("❌ Products error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": products, "error": nil})
	}
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB, es *elasticsearch.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" || req.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Product name and price are required"})
			return
		}

		product := models.Product{
			Name:          strings.TrimSpace(req.Name),
			Brand:         req.Brand,
			Price:         *req.Price,
			OriginalPrice: req.OriginalPrice,
			Description:   req.Description,
			Image:         req.Image,
			Category:      req.Category,
			IsActive:      true,
		}
		if req.Rating != nil {
			product.Rating = *req.Rating
		}
		if req.Reviews != nil {
			product.Reviews = *req.Reviews
		}
		if req.IsActive != nil {
			product.IsActive = *req.IsActive
		}

		if err := db.Create(&product).Error; err != nil {
			log.Println("❌ Product create error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}

		services.IndexProduct(es, product)
		c.JSON(http.StatusOK, gin.H{"data": product, "error": nil})
	}
}

// PUT /api/admin/products/:id
func UpdateProduct(db *gorm.DB, es *elasticsearch.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Product not found"})
			return
		}

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Invalid request body"})
			return
		}

		if name := strings.TrimSpace(req.Name); name != "" {
			product.Name = name
		}
		if req.Brand != "" {
			product.Brand = req.Brand
		}
		if req.Price != nil {
			product.Price = *req.Price
		}
		if req.OriginalPrice != nil {
			product.OriginalPrice = req.OriginalPrice
		}
		if req.Description != "" {
			product.Description = req.Description
		}
		if req.Image != "" {
			product.Image = req.Image
		}
		if req.Category != "" {
			product.Category = req.Category
		}
		if req.Rating != nil {
			product.Rating = *req.Rating
		}
		if req.Reviews != nil {
			product.Reviews = *req.Reviews
		}
		if req.IsActive != nil {
			product.IsActive = *req.IsActive
		}

		if err := db.Save(&product).Error; err != nil {
			log.Println("❌ Product update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}

		services.IndexProduct(es, product)
		c.JSON(http.StatusOK, gin.H{"data": product, "error": nil})
	}
}

// DELETE /api/admin/products/:id
func DeleteProduct(db *gorm.DB, es *elasticsearch.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Product not found"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			log.Println("❌ Product delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}

		services.RemoveProduct(es, product.ID)
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}, "error": nil})
	}
}
