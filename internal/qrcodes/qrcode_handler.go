package qrcodes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/l4greenl/it-inventory/internal/assets"

	"github.com/gin-gonic/gin"
)

type QRCodeHandler struct {
	service *QRCodeService
}

func NewQRCodeHandler(s *QRCodeService) *QRCodeHandler {
	return &QRCodeHandler{service: s}
}

func (h *QRCodeHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/assets/:id/qr", h.GetAssetQRCode)
}

func (h *QRCodeHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/qrcodes", h.GenerateQRCodes)
}

func (h *QRCodeHandler) GenerateQRCodes(c *gin.Context) {
	var req struct {
		IDs []int `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids are required"})
		return
	}

	codes, err := h.service.GenerateBatch(req.IDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR codes", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, codes)
}

func (h *QRCodeHandler) GetAssetQRCode(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	png, err := h.service.GeneratePNG(id)
	if err != nil {
		if errors.Is(err, assets.ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code", "details": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
