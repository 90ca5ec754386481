package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listFoods(c *gin.Context) {
	foods, err := h.catalogService.AllFoods(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.currency.foods(foods))
}

func (h *Handler) getFood(c *gin.Context) {
	id, ok := parseID(c, "Invalid food ID")
	if !ok {
		return
	}

	food, err := h.catalogService.FoodByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.currency.food(food))
}

func (h *Handler) listFoodsByCategory(c *gin.Context) {
	foods, err := h.catalogService.FoodsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.currency.foods(foods))
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalogService.AllCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
