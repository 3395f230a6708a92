package controllers

import (
	"net/http"
	"strconv"
	"time"

	"nutrisnap/services"

	"github.com/gin-gonic/gin"
)

type InsightsController struct {
	Svc *services.InsightsService
}

func NewInsightsController(svc *services.InsightsService) *InsightsController {
	return &InsightsController{Svc: svc}
}

// GET /insights/weekly?anchor=YYYY-MM-DD&shift=prev|next&day=N
// The anchor defaults to today; shift moves it exactly one week, so a
// prev followed by a next lands back on the original anchor.
func (h *InsightsController) GetWeekly(c *gin.Context) {
	now := time.Now()
	anchor := now
	if v := c.Query("anchor"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anchor date, use YYYY-MM-DD"})
			return
		}
		anchor = parsed
	}

	switch c.Query("shift") {
	case "":
	case "prev":
		anchor = services.PrevWeek(anchor)
	case "next":
		anchor = services.NextWeek(anchor)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "shift must be 'prev' or 'next'"})
		return
	}

	day := -1
	if v := c.Query("day"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "day must be 0 (Sunday) through 6 (Saturday)"})
			return
		}
		day = n
	}

	out, err := h.Svc.Weekly(c.GetUint("userID"), anchor, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"anchor": anchor.Format("2006-01-02"), "week": out})
}

// GET /insights/day?date=YYYY-MM-DD returns one day's nutrient gauges.
func (h *InsightsController) GetDayTotals(c *gin.Context) {
	now := time.Now()
	date := now
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, now.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	out, err := h.Svc.DayTotals(c.GetUint("userID"), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}
