package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"selta_back_end/internal/services"
)

const maxUploadSize = 5 << 20 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// POST /api/upload-image
func UploadImage(client *minio.Client, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
			return
		}
		if file.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 5MB"})
			return
		}
		if !allowedImageTypes[file.Header.Get("Content-Type")] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed."})
			return
		}

		url, objectName, err := services.UploadImage(client, bucket, file)
		if err != nil {
			log.Println("❌ Image upload error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
			return
		}

		log.Println("🪣 Image uploaded:", objectName)
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"imagePath": url,
			"filename":  objectName,
			"message":   "Image uploaded successfully",
		})
	}
}

// POST /api/admin/banners/upload-image
func UploadBannerImage(client *minio.Client, bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image file uploaded"})
			return
		}
		if file.Size > maxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 5MB"})
			return
		}
		if !allowedImageTypes[file.Header.Get("Content-Type")] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed."})
			return
		}

		url, objectName, err := services.UploadImage(client, bucket, file)
		if err != nil {
			log.Println("❌ Banner image upload error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload banner image"})
			return
		}

		log.Println("🪣 Banner image uploaded:", objectName)
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"image_url": url,
			"filename":  objectName,
			"message":   "Banner image uploaded successfully",
		})
	}
}
