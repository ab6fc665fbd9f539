package changes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ChangeHandler struct {
	repository *ChangeRepository
}

func NewChangeHandler(r *ChangeRepository) *ChangeHandler {
	return &ChangeHandler{repository: r}
}

func (h *ChangeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/changes", h.GetChanges)
	router.GET("/moves", h.GetMoves)
}

func (h *ChangeHandler) GetChanges(c *gin.Context) {
	filter := ChangeFilter{
		Action: c.Query("action"),
		Field:  c.Query("field"),
	}

	if raw := c.Query("asset_id"); raw != "" {
		assetID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset_id format"})
			return
		}
		filter.AssetID = &assetID
	}

	// Malformed dates are ignored rather than rejected, matching the
	// original listing behavior.
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.EndDate = &t
		}
	}

	changes, err := h.repository.GetChanges(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch change history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, changes)
}

func (h *ChangeHandler) GetMoves(c *gin.Context) {
	moves, err := h.repository.GetMoves()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch move history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, moves)
}
