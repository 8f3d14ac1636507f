package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-hiring-pipeline/config"
	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token issued by the identity provider
// and places its claims on the context. Identity lives outside this service:
// the claims are trusted as-is, no user lookup happens here.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			if cfg.JWTSecret == "" {
				return nil, fmt.Errorf("JWT_SECRET is not configured")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			response.Error(c, http.StatusUnauthorized, "Token missing subject", nil)
			c.Abort()
			return
		}
		email, _ := claims["email"].(string)
		fullName, _ := claims["full_name"].(string)
		gender, _ := claims["gender"].(string)

		role, _ := claims["role"].(string)
		if role == "" {
			role = domain.RoleCandidate
		}

		c.Set(string(domain.KeyUserID), sub)
		c.Set(string(domain.KeyUserEmail), email)
		c.Set(string(domain.KeyUserRole), role)
		c.Set(string(domain.KeyUserGender), gender)
		c.Set(string(domain.KeyUserName), fullName)

		c.Next()
	}
}
