package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"selta_back_end/internal/cache"
	"selta_back_end/internal/models"
)

// Context keys set by AuthRequired.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
	CtxUser   = "current_user"
	CtxToken  = "token"
)

// AuthRequired validates the Bearer token, resolves the user row and puts
// id/email/role plus the full user into the gin context. A missing token is
// 401, a token that fails verification is 403.
func AuthRequired(db *gorm.DB, sessions *cache.SessionCache, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			c.Abort()
			return
		}

		userID, err := parseUserID(token, secret)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		var user models.User
		if cachedID, ok := sessions.GetUserID(c.Request.Context(), token); ok && cachedID == userID {
			err = db.First(&user, userID).Error
		} else {
			// Token must still map to a live session row; signout revokes it.
			err = db.Joins("JOIN user_sessions ON user_sessions.user_id = users.id").
				Where("users.id = ? AND user_sessions.token = ? AND user_sessions.expires_at > NOW()", userID, token).
				First(&user).Error
			if err == nil {
				sessions.Put(c.Request.Context(), token, userID)
			}
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			c.Abort()
			return
		}

		c.Set(CtxUserID, user.ID)
		c.Set(CtxEmail, user.Email)
		c.Set(CtxRole, user.Role)
		c.Set(CtxUser, user)
		c.Set(CtxToken, token)
		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by AuthRequired.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func parseUserID(tokenString, secret string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	id, ok := claims["userId"].(float64)
	if !ok {
		return 0, errors.New("userId claim missing")
	}
	return uint(id), nil
}
