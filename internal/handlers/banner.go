package handlers

import (
	"encoding/json"
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

type bannerRequest struct {
	Title           string  `json:"title"`
	Subtitle        *string `json:"subtitle"`
	Description     *string `json:"description"`
	ImageURL        string  `json:"image_url"`
	ButtonText      *string `json:"button_text"`
	ButtonLink      *string `json:"button_link"`
	DisplayOrder    *int    `json:"display_order"`
	IsActive        *bool   `json:"is_active"`
	BackgroundColor string  `json:"background_color"`
	TextColor       string  `json:"text_color"`
}

type bannerStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

type bannerReorderRequest struct {
	Banners []struct {
		ID           uint `json:"id"`
		DisplayOrder int  `json:"display_order"`
	} `json:"banners"`
}

// GET /api/banners
func ListBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		err := db.Where("is_active = ?", true).
			Order("display_order ASC, created_at DESC").
			Find(&banners).Error
		if err != nil {
			log.Println("❌ Banners error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": []models.Banner{}, "error": "Failed to fetch banners"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": banners, "error": nil})
	}
}

// GET /api/admin/banners
func AdminListBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if limit <= 0 {
			limit = 50
		}
		if offset < 0 {
			offset = 0
		}

		query := db.Model(&models.Banner{})
		if status := c.Query("status"); status != "" && status != "all" {
			query = query.Where("is_active = ?", status == "active")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			log.Println("❌ Admin banners error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": []models.Banner{}, "error": "Failed to fetch banners"})
			return
		}

		var banners []models.Banner
		err := query.Order("display_order ASC, created_at DESC").
			Limit(limit).Offset(offset).
			Find(&banners).Error
		if err != nil {
			log.Println("❌ Admin banners error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": []models.Banner{}, "error": "Failed to fetch banners"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":   banners,
			"total":  total,
			"limit":  limit,
			"offset": offset,
			"error":  nil,
		})
	}
}

// POST /api/admin/banners
func CreateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bannerRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.ImageURL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Title and image URL are required"})
			return
		}

		creator := middleware.CurrentUserID(c)
		banner := models.Banner{
			Title:           req.Title,
			Subtitle:        req.Subtitle,
			Description:     req.Description,
			ImageURL:        req.ImageURL,
			ButtonText:      req.ButtonText,
			ButtonLink:      req.ButtonLink,
			IsActive:        true,
			BackgroundColor: "#ffffff",
			TextColor:       "#000000",
			CreatedBy:       &creator,
		}
		if req.IsActive != nil {
			banner.IsActive = *req.IsActive
		}
		if req.BackgroundColor != "" {
			banner.BackgroundColor = req.BackgroundColor
		}
		if req.TextColor != "" {
			banner.TextColor = req.TextColor
		}

		if req.DisplayOrder != nil {
			banner.DisplayOrder = *req.DisplayOrder
		} else {
			// New banners go last in the carousel.
			var next int
			db.Model(&models.Banner{}).Select("COALESCE(MAX(display_order), 0) + 1").Scan(&next)
			banner.DisplayOrder = next
		}

		if err := db.Create(&banner).Error; err != nil {
			log.Println("❌ Banner create error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to create banner"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": banner, "message": "Banner created successfully", "error": nil})
	}
}

// PUT /api/admin/banners/:id
func UpdateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bannerRequest
		if err := c.ShouldBindJSON(&req); err != nil ||
			strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.ImageURL) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Title and image URL are required"})
			return
		}

		var banner models.Banner
		if err := db.First(&banner, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Banner not found"})
			return
		}

		banner.Title = req.Title
		banner.Subtitle = req.Subtitle
		banner.Description = req.Description
		banner.ImageURL = req.ImageURL
		banner.ButtonText = req.ButtonText
		banner.ButtonLink = req.ButtonLink
		banner.IsActive = req.IsActive == nil || *req.IsActive
		if req.DisplayOrder != nil {
			banner.DisplayOrder = *req.DisplayOrder
		} else {
			banner.DisplayOrder = 0
		}
		if req.BackgroundColor != "" {
			banner.BackgroundColor = req.BackgroundColor
		} else {
			banner.BackgroundColor = "#ffffff"
		}
		if req.TextColor != "" {
			banner.TextColor = req.TextColor
		} else {
			banner.TextColor = "#000000"
		}

		if err := db.Save(&banner).Error; err != nil {
			log.Println("❌ Banner update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to update banner"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": banner, "message": "Banner updated successfully", "error": nil})
	}
}

// DELETE /api/admin/banners/:id
func DeleteBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner models.Banner
		if err := db.First(&banner, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Banner not found"})
			return
		}

		if err := db.Delete(&banner).Error; err != nil {
			log.Println("❌ Banner delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to delete banner"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": banner, "message": "Banner deleted successfully", "error": nil})
	}
}

// PATCH /api/admin/banners/:id/status
func UpdateBannerStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "is_active must be a boolean value"})
			return
		}
		var req bannerStatusRequest
		if err := json.Unmarshal(body, &req); err != nil || req.IsActive == nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "is_active must be a boolean value"})
			return
		}

		var banner models.Banner
		if err := db.First(&banner, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Banner not found"})
			return
		}

		banner.IsActive = *req.IsActive
		if err := db.Save(&banner).Error; err != nil {
			log.Println("❌ Banner status error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to update banner status"})
			return
		}

		verb := "deactivated"
		if banner.IsActive {
			verb = "activated"
		}
		c.JSON(http.StatusOK, gin.H{"data": banner, "message": "Banner " + verb + " successfully", "error": nil})
	}
}

// PATCH /api/admin/banners/reorder
func ReorderBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bannerReorderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Banners == nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Banners must be an array of {id, display_order} objects"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, entry := range req.Banners {
				if err := tx.Model(&models.Banner{}).
					Where("id = ?", entry.ID).
					Update("display_order", entry.DisplayOrder).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Println("❌ Banner reorder error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to reorder banners"})
			return
		}

		var banners []models.Banner
		if err := db.Order("display_order ASC, created_at DESC").Find(&banners).Error; err != nil {
			log.Println("❌ Banner reorder error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to reorder banners"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": banners, "message": "Banner order updated successfully", "error": nil})
	}
}

// GET /api/admin/banners/stats
func BannerStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats struct {
			TotalBanners    int64 `json:"total_banners"`
			ActiveBanners   int64 `json:"active_banners"`
			InactiveBanners int64 `json:"inactive_banners"`
			RecentBanners   int64 `json:"recent_banners"`
		}

		banners := db.Model(&models.Banner{})
		if err := banners.Count(&stats.TotalBanners).Error; err != nil {
			log.Println("❌ Banner stats error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to fetch banner statistics"})
			return
		}
		db.Model(&models.Banner{}).Where("is_active = ?", true).Count(&stats.ActiveBanners)
		stats.InactiveBanners = stats.TotalBanners - stats.ActiveBanners
		db.Model(&models.Banner{}).
			Where("created_at >= ?", time.Now().AddDate(0, 0, -30)).
			Count(&stats.RecentBanners)

		c.JSON(http.StatusOK, gin.H{"data": stats, "error": nil})
	}
}
