package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/joshua-takyi/staydesk/internal/services"
)

func GetStay(s *services.StayService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		stay, err := s.GetStay(c.Request.Context(), bookingID, viewer, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(stay, ""))
	}
}

// GetTimeline serves both the guest and the owner console; an empty timeline
// is an empty list, not an error.
func GetTimeline(s *services.StayService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		items, err := s.Timeline(c.Request.Context(), bookingID, viewer, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(items, ""))
	}
}

func GetFolio(s *services.StayService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		folio, err := s.Folio(c.Request.Context(), bookingID, viewer, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(folio, ""))
	}
}

func GetFoodOrders(s *services.StayService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		orders, err := s.FoodOrders(c.Request.Context(), bookingID, viewer, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(orders, ""))
	}
}

func SubmitPreCheckin(s *services.StayService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		var input models.PreCheckin
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		saved, err := s.SubmitPreCheckin(c.Request.Context(), bookingID, viewer, &input, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(saved, "pre-check-in submitted"))
	}
}

func CreateServiceRequest(s *services.StayService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		var req models.ServiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		created, err := s.CreateServiceRequest(c.Request.Context(), bookingID, viewer, &req, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, helpers.SuccessResponse(created, "service request created"))
	}
}

func RequestCheckout(s *services.StayService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		if err := s.RequestCheckout(c.Request.Context(), bookingID, viewer, accessToken(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, helpers.SuccessResponse(nil, "checkout requested"))
	}
}
