package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/joshua-takyi/staydesk/internal/services"
)

const (
	ClaimsKey      = "user"
	AccessTokenKey = "access_token"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrActionNotAllowed), errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	}
	var rpcErr *models.RPCError
	if errors.As(err, &rpcErr) {
		return procedureStatus(rpcErr.Code)
	}
	return http.StatusInternalServerError
}

// procedureStatus maps the SQLSTATE a stored procedure raised. P0001 is a
// RAISE EXCEPTION from the procedure's own checks, class 22 is bad input and
// class 23 a constraint the write would break. Anything else (missing
// function, permissions) is ours to fix.
func procedureStatus(code string) int {
	switch {
	case code == "P0001", strings.HasPrefix(code, "23"):
		return http.StatusConflict
	case strings.HasPrefix(code, "22"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Internal failures are attached to
// the gin context for the error logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, helpers.ErrorResponse("internal server error"))
		return
	}
	var rpcErr *models.RPCError
	if errors.As(err, &rpcErr) {
		c.JSON(status, helpers.ErrorResponse(rpcErr.Message))
		return
	}
	c.JSON(status, helpers.ErrorResponse(err.Error()))
}

func claimsFrom(c *gin.Context) (*helpers.EnhancedClaims, bool) {
	raw, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := raw.(*helpers.EnhancedClaims)
	return claims, ok
}

// viewerFrom builds the service viewer from the authenticated claims and
// writes a 401 when there are none.
func viewerFrom(c *gin.Context) (services.Viewer, bool) {
	claims, ok := claimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("unauthorized"))
		return services.Viewer{}, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("invalid user ID in token"))
		return services.Viewer{}, false
	}
	return services.Viewer{
		UserID: userID,
		Name:   claims.Fullname,
		Staff:  claims.IsStaff(),
	}, true
}

func accessToken(c *gin.Context) string {
	return c.GetString(AccessTokenKey)
}

// pathID parses the :id path parameter, tolerating stray quotes and spaces.
func pathID(c *gin.Context, label string) (uuid.UUID, bool) {
	raw := strings.Trim(strings.TrimSpace(c.Param("id")), "\"'")
	if raw == "" {
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse(label+" is required"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid "+label+" format"))
		return uuid.Nil, false
	}
	return id, true
}
