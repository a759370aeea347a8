package middleware

import (
	"strings"

	"fintrack-backend/config"
	"fintrack-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired validates the Bearer token and puts the user id into the
// request context. Identity is only ever read here: every service call
// takes the user id as an explicit argument.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.Unauthorized(c, "Missing or malformed Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(config.AppConfig.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.Unauthorized(c, "Invalid token claims")
			c.Abort()
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			utils.Unauthorized(c, "Token has no subject")
			c.Abort()
			return
		}

		c.Set("user_id", sub)
		c.Next()
	}
}
