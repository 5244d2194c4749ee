package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/services"
)

const (
	claimsKey      = "user"
	accessTokenKey = "access_token"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger logs one line per request
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")
		status := c.Writer.Status()

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}

		logger.Log(c.Request.Context(), level, "HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler logs errors attached by handlers and answers with a generic
// 500 when the handler did not write a response itself.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last()
		requestID, _ := c.Get("request_id")

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// TokenValidator verifies an access token and returns its claims.
type TokenValidator func(token string) (*helpers.CustomClaims, error)

func bearerToken(c *gin.Context) string {
	if token, err := c.Cookie(accessTokenKey); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func unauthorized(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, helpers.ErrorResponse(reason))
}

// AuthMiddleware authenticates the caller from the access_token cookie or a
// bearer header. An expired cookie session is refreshed once with the
// refresh_token cookie. The caller's role comes from their profile and
// defaults to guest.
func AuthMiddleware(validate TokenValidator, userService *services.UserService, secureCookies bool, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			unauthorized(c, "access token not found")
			return
		}

		claims, err := validate(token)
		if err != nil {
			refreshToken, refreshErr := c.Cookie("refresh_token")
			if refreshErr != nil || refreshToken == "" {
				unauthorized(c, "invalid or expired token")
				return
			}

			tokens, refreshErr := userService.RefreshToken(c.Request.Context(), refreshToken)
			if refreshErr != nil || tokens == nil || tokens.AccessToken == "" {
				logger.Warn("Token refresh failed", "error", refreshErr)
				unauthorized(c, "token expired and refresh failed")
				return
			}

			helpers.SetSessionCookies(c, tokens, secureCookies)
			logger.Info("Token refreshed", "user_id", tokens.User.ID, "expires_in", tokens.ExpiresIn)

			token = tokens.AccessToken
			claims, err = validate(token)
			if err != nil {
				unauthorized(c, "refreshed token validation failed")
				return
			}
		}

		enhanced := &helpers.EnhancedClaims{
			CustomClaims: claims,
			Role:         "guest",
			UserID:       claims.Subject,
			Email:        claims.Email,
		}

		userID, parseErr := uuid.Parse(claims.Subject)
		if parseErr != nil {
			logger.Error("Invalid user ID in token", "user_id", claims.Subject, "error", parseErr)
			unauthorized(c, "invalid user ID in token")
			return
		}

		user, err := userService.GetUser(c.Request.Context(), userID, token)
		if err != nil {
			logger.Info("Profile not found, using default role", "user_id", claims.Subject, "error", err)
		} else {
			if user.Role != "" {
				enhanced.Role = user.Role
			}
			enhanced.Fullname = user.FullName
			enhanced.PhoneNumber = user.PhoneNumber
			enhanced.CreatedAt = user.CreatedAt.Format(time.RFC3339)
		}

		c.Set(claimsKey, enhanced)
		c.Set(accessTokenKey, token)
		c.Next()
	}
}

// RequireRole lets through callers holding one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(claimsKey)
		claims, ok := raw.(*helpers.EnhancedClaims)
		if !exists || !ok {
			unauthorized(c, "unauthorized")
			return
		}
		if !claims.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, helpers.ErrorResponse("access denied"))
			return
		}
		c.Next()
	}
}
