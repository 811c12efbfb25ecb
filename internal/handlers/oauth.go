package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth/gothic"
	"gorm.io/gorm"

	"selta_back_end/internal/config"
	"selta_back_end/internal/models"
)

// GET /api/auth/:provider
func OAuthBegin() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Request.URL.Query()
		q.Add("provider", c.Param("provider"))
		c.Request.URL.RawQuery = q.Encode()
		gothic.BeginAuthHandler(c.Writer, c.Request)
	}
}

// GET /api/auth/:provider/callback
func OAuthCallback(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Request.URL.Query()
		q.Add("provider", c.Param("provider"))
		c.Request.URL.RawQuery = q.Encode()

		gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
		if err != nil {
			log.Println("❌ OAuth error:", err)
			c.Redirect(http.StatusTemporaryRedirect, cfg.FrontendURL+"/login?error=oauth_failed")
			return
		}

		email := strings.ToLower(strings.TrimSpace(gothUser.Email))
		if email == "" {
			c.Redirect(http.StatusTemporaryRedirect, cfg.FrontendURL+"/login?error=oauth_failed")
			return
		}

		var user models.User
		err = db.Where("email = ?", email).First(&user).Error
		if err != nil {
			user = models.User{
				Email:     email,
				FirstName: gothUser.FirstName,
				LastName:  gothUser.LastName,
				Provider:  gothUser.Provider,
				Role:      resolveRole(cfg, email),
			}
			if user.FirstName == "" && gothUser.Name != "" {
				user.FirstName = gothUser.Name
			}
			if err := db.Create(&user).Error; err != nil {
				log.Println("❌ OAuth user create error:", err)
				c.Redirect(http.StatusTemporaryRedirect, cfg.FrontendURL+"/login?error=oauth_failed")
				return
			}
			log.Println("✅ New OAuth user:", email, "via", gothUser.Provider)
		}

		token, err := issueSession(db, cfg.JWTSecret, user.ID)
		if err != nil {
			log.Println("❌ Session error:", err)
			c.Redirect(http.StatusTemporaryRedirect, cfg.FrontendURL+"/login?error=oauth_failed")
			return
		}

		c.Redirect(http.StatusTemporaryRedirect,
			fmt.Sprintf("%s/auth/callback?token=%s", cfg.FrontendURL, token))
	}
}
