package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/staydesk/internal/helpers"
	"github.com/joshua-takyi/staydesk/internal/models"
	"github.com/joshua-takyi/staydesk/internal/services"
)

func ListArrivals(d *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := services.ArrivalFilter{
			Search: c.Query("q"),
			State:  c.Query("state"),
		}
		board, err := d.Arrivals(c.Request.Context(), c.Query("date"), filter, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(board, ""))
	}
}

func ExperienceStats(d *services.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
		if err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse("invalid days parameter"))
			return
		}
		stats, err := d.Experience(c.Request.Context(), days)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, ""))
	}
}

func CollectPayment(f *services.FolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFrom(c)
		if !ok {
			return
		}
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		var req struct {
			Amount float64 `json:"amount"`
			Method string  `json:"method"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		payment := &models.PaymentCollection{
			Amount: req.Amount,
			Method: models.PaymentMethod(req.Method),
		}
		res, err := f.CollectPayment(c.Request.Context(), bookingID, viewer, payment, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(res, "payment collected"))
	}
}

func CheckoutStay(f *services.FolioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := pathID(c, "booking ID")
		if !ok {
			return
		}

		folio, err := f.CheckoutStay(c.Request.Context(), bookingID, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(folio, "stay checked out"))
	}
}

func ListApplications(h *services.HiringService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apps, err := h.ListApplications(c.Request.Context(), c.Query("status"), accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(apps, ""))
	}
}

func UpdateApplication(h *services.HiringService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "application ID")
		if !ok {
			return
		}

		var req struct {
			Status string `json:"status" binding:"required"`
			Notes  string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		app, err := h.UpdateStatus(c.Request.Context(), id, req.Status, req.Notes, accessToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, helpers.SuccessResponse(app, "application updated"))
	}
}
