package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/joshua-takyi/staydesk/internal/services"
)

func CreateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		res, err := u.CreateUser(c.Request.Context(), &user)
		if err != nil {
			if statusFor(err) == http.StatusInternalServerError {
				// signup failures are already sanitised by the repo
				c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
				return
			}
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(res.User, "account created, check your email to confirm"))
	}
}

func AuthenticateUser(u *services.UserService, secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid request payload"))
			return
		}

		tokens, err := u.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
		if err != nil || tokens == nil || tokens.AccessToken == "" {
			c.JSON(http.StatusUnauthorized, helpers.ErrorResponse("invalid email or password"))
			return
		}

		helpers.SetSessionCookies(c, tokens, secureCookies)
		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{"user": tokens.User}, "logged in"))
	}
}

func Logout(secureCookies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		helpers.ClearSessionCookies(c, secureCookies)
		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "logged out"))
	}
}
