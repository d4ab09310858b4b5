package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Auth guards the point store routes. Two schemes are accepted: the fixed
// "Basic <token>" the trip client ships with, and a "Bearer <jwt>" obtained
// from the login endpoint. An empty basicToken disables the Basic scheme.
func Auth(basicToken string, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		scheme, credentials, found := strings.Cut(header, " ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		switch strings.ToLower(scheme) {
		case "basic":
			if basicToken != "" && credentials == basicToken {
				c.Next()
				return
			}
		case "bearer":
			token, err := jwt.Parse(credentials, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return jwtSecret, nil
			})
			if err == nil && token.Valid {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	}
}
