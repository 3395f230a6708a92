package controllers

import (
	"net/http"

	"nutrisnap/services"

	"github.com/gin-gonic/gin"
)

type LimitsController struct {
	Svc *services.LimitsService
}

func NewLimitsController(svc *services.LimitsService) *LimitsController {
	return &LimitsController{Svc: svc}
}

// GET /limits returns the five thresholds, seeding defaults on first read.
func (h *LimitsController) GetLimits(c *gin.Context) {
	limits, err := h.Svc.Get(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, limits)
}

// PUT /limits is an explicit save, all five values required and positive.
func (h *LimitsController) UpdateLimits(c *gin.Context) {
	var req struct {
		Calories *float64 `json:"calories" binding:"required"`
		Protein  *float64 `json:"protein" binding:"required"`
		Carbs    *float64 `json:"carbs" binding:"required"`
		Fat      *float64 `json:"fat" binding:"required"`
		Sugar    *float64 `json:"sugar" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limits, err := h.Svc.Upsert(c.GetUint("userID"),
		*req.Calories, *req.Protein, *req.Carbs, *req.Fat, *req.Sugar)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, limits)
}
