package api

import (
	"net/http"

	"foolivery/internal/service"
	"foolivery/internal/session"

	"github.com/gin-gonic/gin"
)

type updateStatusRequest struct {
	Status string `json:"status"`
}

// createOrder handles checkout
func (h *Handler) createOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order data"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), session.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.currency.order(order))
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), session.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.currency.orders(orders))
}

// getOrder handles get order by ID
func (h *Handler) getOrder(c *gin.Context) {
	orderID, ok := parseID(c, "Invalid order ID")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), session.UserID(c), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.currency.order(order))
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	orderID, ok := parseID(c, "Invalid order ID")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), session.UserID(c), orderID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.currency.order(order))
}
