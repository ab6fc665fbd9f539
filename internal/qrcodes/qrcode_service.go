package qrcodes

import (
	"encoding/base64"
	"fmt"

	"github.com/l4greenl/it-inventory/internal/assets"
	"github.com/l4greenl/it-inventory/pkg/models"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrImageSize = 256

type AssetQRCode struct {
	ID              int    `json:"id"`
	InventoryNumber string `json:"inventory_number"`
	FullName        string `json:"full_name"`
	QRBase64        string `json:"qr_base64"`
}

// QRCodeService renders QR labels pointing at the asset page of the
// web client, so a scanned sticker opens the asset card directly.
type QRCodeService struct {
	assetsRepo      *assets.AssetsRepository
	frontendBaseURL string
	logger          *zap.Logger
}

func NewQRCodeService(assetsRepo *assets.AssetsRepository, frontendBaseURL string, logger *zap.Logger) *QRCodeService {
	return &QRCodeService{
		assetsRepo:      assetsRepo,
		frontendBaseURL: frontendBaseURL,
		logger:          logger,
	}
}

// GenerateBatch renders a QR label per known asset. Unknown ids are
// skipped, matching how sticker sheets are printed for mixed batches.
func (s *QRCodeService) GenerateBatch(ids []int) ([]AssetQRCode, error) {
	records, err := s.assetsRepo.GetAssetRecords(ids)
	if err != nil {
		return nil, err
	}

	known := make(map[int]struct{}, len(records))
	codes := make([]AssetQRCode, 0, len(records))
	for i := range records {
		record := &records[i]
		known[record.ID] = struct{}{}

		png, err := s.renderPNG(record.ID)
		if err != nil {
			return nil, err
		}

		codes = append(codes, AssetQRCode{
			ID:              record.ID,
			InventoryNumber: record.InventoryNumber,
			FullName:        assetDisplayName(record),
			QRBase64:        base64.StdEncoding.EncodeToString(png),
		})
	}

	for _, id := range ids {
		if _, ok := known[id]; !ok {
			s.logger.Warn("skipping QR code for unknown asset", zap.Int("assetID", id))
		}
	}

	return codes, nil
}

// GeneratePNG renders one QR label as raw PNG bytes.
func (s *QRCodeService) GeneratePNG(id int) ([]byte, error) {
	_, found, err := s.assetsRepo.GetAssetRecord(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, assets.ErrAssetNotFound
	}

	return s.renderPNG(id)
}

func (s *QRCodeService) renderPNG(id int) ([]byte, error) {
	url := fmt.Sprintf("%s/assets/%d", s.frontendBaseURL, id)
	png, err := qrcode.Encode(url, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}
	return png, nil
}

func assetDisplayName(record *models.FlatAssetRecord) string {
	typeName := models.UntypedAssetName
	if record.TypeName != nil {
		typeName = *record.TypeName
	}
	return models.AssetFullName(typeName, record.Brand, record.Model)
}
