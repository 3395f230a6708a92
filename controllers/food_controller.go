package controllers

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"nutrisnap/services"
	"nutrisnap/utils"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Capture  *services.CaptureService
	Searcher services.NutrientSearcher
	RT       *services.RealtimeHub
}

func NewFoodController(capture *services.CaptureService, searcher services.NutrientSearcher, rt *services.RealtimeHub) *FoodController {
	return &FoodController{Capture: capture, Searcher: searcher, RT: rt}
}

// POST /food/capture  { "image_base64": "data:image/jpeg;base64,..." }
// Starts a fresh capture session for the image and returns the settled
// snapshot. Re-capturing while a previous run is in flight supersedes it.
func (fc *FoodController) CaptureFood(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	jpeg, err := decodeImagePayload(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")

	// archive is best effort and must never delay the pipeline
	go func() {
		if _, err := utils.ArchiveCaptureImage(userID, jpeg); err != nil {
			log.Printf("capture archive failed for user %d: %v", userID, err)
		}
	}()

	snap := fc.Capture.StartCapture(c.Request.Context(), userID, jpeg)
	c.JSON(http.StatusOK, snap)
}

// GET /food/session polls the current capture session.
func (fc *FoodController) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, fc.Capture.Snapshot(c.GetUint("userID")))
}

// POST /food/confirm  { "candidate_index": 0, "servings": "1.5" }
func (fc *FoodController) ConfirmCandidate(c *gin.Context) {
	var req struct {
		CandidateIndex *int   `json:"candidate_index" binding:"required"`
		Servings       string `json:"servings" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	multiplier, err := strconv.ParseFloat(strings.TrimSpace(req.Servings), 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": utils.ErrScaleRejected.Error()})
		return
	}

	entry, err := fc.Capture.Confirm(c.GetUint("userID"), *req.CandidateIndex, multiplier)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrScaleRejected):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoSuchCandidate):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrConfirmInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrNoSession), errors.Is(err, services.ErrNotResolved):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if fc.RT != nil {
		fc.RT.NotifyLogCreated(entry.UserID, entry)
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /food/search?q=apple runs a manual candidate search.
func (fc *FoodController) SearchFoods(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'q' query param"})
		return
	}
	out, err := fc.Searcher.SearchFoods(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func decodeImagePayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, errors.New("invalid data URI")
		}
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.New("invalid base64 image")
	}
	return data, nil
}
