package controllers

import (
	"net/http"
	"strconv"

	"nutrisnap/services"
	"nutrisnap/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LogController struct {
	Logs services.LogStore
	RT   *services.RealtimeHub
}

func NewLogController(logs services.LogStore, rt *services.RealtimeHub) *LogController {
	return &LogController{Logs: logs, RT: rt}
}

// GET /logs?limit=20 returns recent entries, newest first.
func (lc *LogController) ListLogs(c *gin.Context) {
	limit := services.DefaultLogLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	logs, err := lc.Logs.ListRecent(c.GetUint("userID"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

type manualLogInput struct {
	FoodName string   `json:"food_name" binding:"required"`
	Calories *float64 `json:"calories" binding:"required"`
	Protein  *float64 `json:"protein" binding:"required"`
	Carbs    *float64 `json:"carbs" binding:"required"`
	Fat      *float64 `json:"fat" binding:"required"`
	Sugar    *float64 `json:"sugar" binding:"required"`
}

// POST /logs adds a manual entry, all five nutrients required. Values are
// rounded to whole units at commit, same as the capture path.
func (lc *LogController) AddLog(c *gin.Context) {
	var input manualLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, v := range []*float64{input.Calories, input.Protein, input.Carbs, input.Fat, input.Sugar} {
		if *v < 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "nutrient values must be non-negative"})
			return
		}
	}

	rec, err := utils.Scale(utils.NormalizedNutrients{
		Calories: input.Calories,
		Protein:  input.Protein,
		Carbs:    input.Carbs,
		Fat:      input.Fat,
		Sugar:    input.Sugar,
	}, 1)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	entry, err := lc.Logs.Insert(c.GetUint("userID"), input.FoodName, rec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if lc.RT != nil {
		lc.RT.NotifyLogCreated(entry.UserID, entry)
	}
	c.JSON(http.StatusCreated, entry)
}

// DELETE /logs/:log_id. Removal is immediate and not reversible. Deleting
// an id that is already gone still answers 204; the refreshed list is the
// source of truth.
func (lc *LogController) DeleteLog(c *gin.Context) {
	logID, err := uuid.Parse(c.Param("log_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log id"})
		return
	}

	userID := c.GetUint("userID")
	if err := lc.Logs.Delete(userID, logID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if lc.RT != nil {
		lc.RT.NotifyLogDeleted(userID, logID.String())
	}
	c.Status(http.StatusNoContent)
}
