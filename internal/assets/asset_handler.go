package assets

import (
	"errors"
	"net/http"
	"strconv"

	custom_error "github.com/l4greenl/it-inventory/pkg/errors"

	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	service *AssetService
}

func NewAssetHandler(service *AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

func (h *AssetHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/assets", h.GetAssets)
	router.GET("/assets/:id", h.GetAsset)
}

func (h *AssetHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/assets", h.CreateAsset)
	router.PUT("/assets/:id", h.UpdateAsset)
	router.DELETE("/assets/:id", h.DeleteAsset)
	router.DELETE("/assets/batch-delete", h.BatchDeleteAssets)
}

func (h *AssetHandler) GetAssets(c *gin.Context) {
	assets, err := h.service.GetAssets(c.Query("search"), c.Query("sort"), c.Query("order"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch assets", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	asset, err := h.service.GetAsset(id)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch asset", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	asset, err := h.service.CreateAsset(req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to create asset")
		return
	}

	c.JSON(http.StatusCreated, asset)
}

func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	asset, err := h.service.UpdateAsset(id, req)
	if err != nil {
		h.writeServiceError(c, err, "Failed to update asset")
		return
	}

	c.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asset ID"})
		return
	}

	if err := h.service.DeleteAsset(id); err != nil {
		h.writeServiceError(c, err, "Failed to delete asset")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

func (h *AssetHandler) BatchDeleteAssets(c *gin.Context) {
	var req struct {
		IDs []int `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if len(req.IDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to delete"})
		return
	}

	if err := h.service.DeleteAssets(req.IDs); err != nil {
		h.writeServiceError(c, err, "Failed to delete assets")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Assets deleted successfully"})
}

func (h *AssetHandler) writeServiceError(c *gin.Context, err error, fallback string) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required fields", "missing": validationErr.Missing})
	case errors.Is(err, ErrAssetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
	default:
		switch err.(type) {
		case *custom_error.UniqueViolationError:
			c.JSON(http.StatusConflict, gin.H{"error": "Inventory number already registered"})
		case *custom_error.ForeignKeyViolationError:
			c.JSON(http.StatusConflict, gin.H{"error": "Asset references a missing catalog entry"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
		}
	}
}
