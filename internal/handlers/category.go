package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"selta_back_end/internal/models"
)

type categoryRequest struct {
	Name         string  `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// GET /api/categories
func ListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		err := db.Where("is_active = ?", true).
			Order("display_order, name").
			Find(&categories).Error
		if err != nil {
			log.Println("❌ Categories error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": categories, "error": nil})
	}
}

// GET /api/admin/categories
func AdminListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("display_order, name").Find(&categories).Error; err != nil {
			log.Println("❌ Categories error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": categories, "error": nil})
	}
}

// POST /api/admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Category name is required"})
			return
		}

		category := models.Category{
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			IsActive:    true,
		}
		if req.DisplayOrder != nil {
			category.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			category.IsActive = *req.IsActive
		}

		if err := db.Create(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Category name already exists"})
				return
			}
			log.Println("❌ Category create error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": category, "error": nil})
	}
}

// PUT /api/admin/categories/:id
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Category not found"})
			return
		}

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Invalid request body"})
			return
		}

		if name := strings.TrimSpace(req.Name); name != "" {
			category.Name = name
		}
		if req.Description != nil {
			category.Description = req.Description
		}
		if req.DisplayOrder != nil {
			category.DisplayOrder = *req.DisplayOrder
		}
		if req.IsActive != nil {
			category.IsActive = *req.IsActive
		}

		if err := db.Save(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Category name already exists"})
				return
			}
			log.Println("❌ Category update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": category, "error": nil})
	}
}

// DELETE /api/admin/categories/:id
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Category not found"})
			return
		}

		var inUse int64
		if err := db.Model(&models.Product{}).Where("category = ?", category.Name).Count(&inUse).Error; err != nil {
			log.Println("❌ Category delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}
		if inUse > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Cannot delete category that is being used by products"})
			return
		}

		if err := db.Delete(&category).Error; err != nil {
			log.Println("❌ Category delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}, "error": nil})
	}
}
