package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/joshua-takyi/staydesk/internal/services"
)

func CreateReview(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		var review models.GuestReview
		if err := c.ShouldBindJSON(&review); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		created, err := r.CreateReview(c.Request.Context(), bookingID, viewer, &review, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "thank you for your review"))
	}
}

func ListReviews(r *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		reviews, err := r.ListReviews(c.Request.Context(), bookingID, viewer, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(reviews, ""))
	}
}
