package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"selta_back_end/internal/middleware"
	"selta_back_end/internal/models"
)

type addressRequest struct {
	Type           string  `json:"type"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Phone          string  `json:"phone"`
	Address        string  `json:"address"`
	AdditionalInfo *string `json:"additional_info"`
	Country        string  `json:"country"`
	County         *string `json:"county"`
	Region         *string `json:"region"`
	IsDefault      bool    `json:"is_default"`
}

func (r addressRequest) incomplete() bool {
	return strings.TrimSpace(r.FirstName) == "" ||
		strings.TrimSpace(r.LastName) == "" ||
		strings.TrimSpace(r.Phone) == "" ||
		strings.TrimSpace(r.Address) == "" ||
		strings.TrimSpace(r.Country) == ""
}

func (r addressRequest) addrType() string {
	if r.Type == "" {
		return "shipping"
	}
	return r.Type
}

// GET /api/addresses
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		var addresses []models.UserAddress
		err := db.Where("user_id = ?", userID).
			Order("is_default DESC, created_at DESC").
			Find(&addresses).Error
		if err != nil {
			log.Println("❌ Addresses error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to fetch addresses"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": addresses, "error": nil})
	}
}

// POST /api/addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.incomplete() {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Missing required address fields"})
			return
		}

		userID := middleware.CurrentUserID(c)
		address := models.UserAddress{
			UserID:         userID,
			Type:           req.addrType(),
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Phone:          req.Phone,
			Address:        req.Address,
			AdditionalInfo: req.AdditionalInfo,
			Country:        req.Country,
			County:         req.County,
			Region:         req.Region,
			IsDefault:      req.IsDefault,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefault {
				if err := tx.Model(&models.UserAddress{}).
					Where("user_id = ? AND type = ?", userID, address.Type).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			log.Println("❌ Address create error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to add address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Address added successfully", "address": address}, "error": nil})
	}
}

// PUT /api/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addressRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.incomplete() {
			c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "Missing required address fields"})
			return
		}

		userID := middleware.CurrentUserID(c)

		var address models.UserAddress
		err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Address not found"})
			return
		}

		address.Type = req.addrType()
		address.FirstName = req.FirstName
		address.LastName = req.LastName
		address.Phone = req.Phone
		address.Address = req.Address
		address.AdditionalInfo = req.AdditionalInfo
		address.Country = req.Country
		address.County = req.County
		address.Region = req.Region
		address.IsDefault = req.IsDefault

		err = db.Transaction(func(tx *gorm.DB) error {
			if req.IsDefault {
				if err := tx.Model(&models.UserAddress{}).
					Where("user_id = ? AND type = ? AND id != ?", userID, address.Type, address.ID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Save(&address).Error
		})
		if err != nil {
			log.Println("❌ Address update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to update address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Address updated successfully", "address": address}, "error": nil})
	}
}

// DELETE /api/addresses/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.CurrentUserID(c)

		var address models.UserAddress
		err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"data": nil, "error": "Address not found"})
			return
		}

		if err := db.Delete(&address).Error; err != nil {
			log.Println("❌ Address delete error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "error": "Failed to delete address"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Address deleted successfully", "deleted_address": address}, "error": nil})
	}
}
