package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"selta_back_end/internal/cache"
	"selta_back_end/internal/config"
	"selta_back_end/internal/middleware"
	"selta_back_end/internal/models"
	"selta_back_end/internal/utils"
)

type signupRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/signup
func Signup(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"user": nil, "token": nil, "error": "Email and password are required"})
			return
		}

		email := strings.TrimSpace(req.Email)

		var existing models.User
		if err := db.Select("id").Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"user": nil, "token": nil, "error": "User already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"user": nil, "token": nil, "error": "Internal server error"})
			return
		}

		user := models.User{
			Email:        email,
			PasswordHash: string(hash),
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Role:         resolveRole(cfg, email),
		}
		if err := db.Create(&user).Error; err != nil {
			// Unique index may fire on a concurrent signup with the same email.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusBadRequest, gin.H{"user": nil, "token": nil, "error": "User already exists"})
				return
			}
			log.Println("❌ Signup error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"user": nil, "token": nil, "error": "Internal server error"})
			return
		}

		token, err := issueSession(db, cfg.JWTSecret, user.ID)
		if err != nil {
			log.Println("❌ Session error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"user": nil, "token": nil, "error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user.Public(), "token": token, "error": nil})
	}
}

// POST /api/auth/signin
func Signin(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signinRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"user": nil, "token": nil, "error": "Email and password are required"})
			return
		}

		var user models.User
		err := db.Where("email = ?", strings.TrimSpace(req.Email)).First(&user).Error
		if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"user": nil, "token": nil, "error": "Invalid credentials"})
			return
		}

		token, err := issueSession(db, cfg.JWTSecret, user.ID)
		if err != nil {
			log.Println("❌ Session error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"user": nil, "token": nil, "error": "Internal server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user.Public(), "token": token, "error": nil})
	}
}

// POST /api/auth/signout
func Signout(db *gorm.DB, sessions *cache.SessionCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString(middleware.CtxToken)
		if token != "" {
			if err := db.Where("token = ?", token).Delete(&models.UserSession{}).Error; err != nil {
				log.Println("❌ Signout error:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			sessions.Invalidate(c.Request.Context(), token)
		}
		c.JSON(http.StatusOK, gin.H{"error": nil})
	}
}

// GET /api/auth/session
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet(middleware.CtxUser).(models.User)
		c.JSON(http.StatusOK, gin.H{"user": user.Public(), "error": nil})
	}
}

// resolveRole grants the admin role to configured emails, everyone else is a
// plain user.
func resolveRole(cfg config.Config, email string) string {
	if cfg.IsAdminEmail(email) {
		return "admin"
	}
	return "user"
}

// issueSession mints a JWT and records it in user_sessions so it can be
// revoked on signout.
func issueSession(db *gorm.DB, secret string, userID uint) (string, error) {
	token, err := utils.GenerateJWT(userID, secret)
	if err != nil {
		return "", err
	}
	session := models.UserSession{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(utils.SessionDuration),
	}
	if err := db.Create(&session).Error; err != nil {
		return "", err
	}
	return token, nil
}
