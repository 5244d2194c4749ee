package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staydesk/internal/helpers"
)

// Profile returns the caller as the auth middleware resolved them.
func Profile() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"user_id":   claims.UserID,
			"email":     claims.Email,
			"full_name": claims.Fullname,
			"role":      claims.GetSafeRole(),
			"is_staff":  claims.IsStaff(),
			"is_owner":  claims.IsOwner(),
		}, ""))
	}
}
