package helpers

import (
	"github.com/gin-gonic/gin"
	"github.com/supabase-community/gotrue-go/types"
)

const refreshTokenMaxAge = 3600 * 24 * 30

// SetSessionCookies stores the Supabase session in http-only cookies.
func SetSessionCookies(c *gin.Context, tokens *types.TokenResponse, secure bool) {
	c.SetCookie("access_token", tokens.AccessToken, tokens.ExpiresIn, "/", "", secure, true)
	c.SetCookie("refresh_token", tokens.RefreshToken, refreshTokenMaxAge, "/", "", secure, true)
}

func ClearSessionCookies(c *gin.Context, secure bool) {
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}
