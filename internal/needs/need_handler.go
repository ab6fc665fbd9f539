package needs

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	custom_error "github.com/l4greenl/it-inventory/pkg/errors"

	"github.com/gin-gonic/gin"
)

type NeedHandler struct {
	repository *NeedsRepository
}

func NewNeedHandler(r *NeedsRepository) *NeedHandler {
	return &NeedHandler{repository: r}
}

func (h *NeedHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/needs", h.GetNeeds)
	router.GET("/needs/:id", h.GetNeed)
	router.POST("/needs", h.CreateNeed)
	router.PUT("/needs/:id", h.UpdateNeed)
	router.DELETE("/needs/:id", h.DeleteNeed)
	router.PATCH("/needs/batch-update", h.BatchUpdateStatus)
	router.DELETE("/needs/batch-delete", h.BatchDelete)
}

func (h *NeedHandler) GetNeeds(c *gin.Context) {
	needs, err := h.repository.GetNeeds()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch needs", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, needs)
}

func (h *NeedHandler) GetNeed(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	need, err := h.repository.GetNeed(id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, need)
}

func (h *NeedHandler) CreateNeed(c *gin.Context) {
	var req NeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		h.writeError(c, err)
		return
	}

	reasonDate, _ := req.reasonDate()
	need, err := h.repository.CreateNeed(req.DepartmentID, req.AssetTypeID, req.Quantity, reasonDate, strings.TrimSpace(req.Status), req.note())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, need)
}

func (h *NeedHandler) UpdateNeed(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req NeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		h.writeError(c, err)
		return
	}

	reasonDate, _ := req.reasonDate()
	need, err := h.repository.UpdateNeed(id, req.DepartmentID, req.AssetTypeID, req.Quantity, reasonDate, strings.TrimSpace(req.Status), req.note())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, need)
}

func (h *NeedHandler) DeleteNeed(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.repository.DeleteNeed(id); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Need deleted"})
}

func (h *NeedHandler) BatchUpdateStatus(c *gin.Context) {
	var req struct {
		IDs    []int  `json:"ids"`
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	req.Status = strings.TrimSpace(req.Status)
	if len(req.IDs) == 0 || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids and status are required"})
		return
	}

	if err := h.repository.UpdateStatuses(req.IDs, req.Status); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Needs updated", "ids": req.IDs, "status": req.Status})
}

func (h *NeedHandler) BatchDelete(c *gin.Context) {
	var req struct {
		IDs []int `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids are required"})
		return
	}

	deleted, err := h.repository.DeleteNeeds(req.IDs)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Needs deleted", "deleted": deleted})
}

func (h *NeedHandler) writeError(c *gin.Context, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "missing": validationErr.Missing})
		return
	}

	if errors.Is(err, ErrNeedNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Need not found"})
		return
	}

	switch err.(type) {
	case *custom_error.ForeignKeyViolationError:
		c.JSON(http.StatusConflict, gin.H{"error": "Unknown department or asset type"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed", "details": err.Error()})
	}
}
