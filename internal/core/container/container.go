package container

import (
	"database/sql"

	"github.com/l4greenl/it-inventory/internal/assets"
	"github.com/l4greenl/it-inventory/internal/catalog"
	"github.com/l4greenl/it-inventory/internal/changes"
	"github.com/l4greenl/it-inventory/internal/config"
	"github.com/l4greenl/it-inventory/internal/export"
	"github.com/l4greenl/it-inventory/internal/needs"
	"github.com/l4greenl/it-inventory/internal/qrcodes"
	"github.com/l4greenl/it-inventory/internal/repository"
	"github.com/l4greenl/it-inventory/internal/users"
	"github.com/l4greenl/it-inventory/pkg/security"

	"go.uber.org/zap"
)

type Container struct {
	Repository     *repository.Repository
	LoginHandler   *security.LoginHandler
	AssetHandler   *assets.AssetHandler
	CatalogHandler *catalog.CatalogHandler
	NeedHandler    *needs.NeedHandler
	ChangeHandler  *changes.ChangeHandler
	QRCodeHandler  *qrcodes.QRCodeHandler
	ExportHandler  *export.ExportHandler
	UserHandler    *users.UsersHandler
}

func NewAppContainer(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Container {
	repo := repository.NewRepository(db)

	recorder := changes.NewRecorder()
	assetsRepo := assets.NewAssetsRepository(repo)
	assetService := assets.NewAssetService(assetsRepo, repo, recorder, logger)
	assetHandler := assets.NewAssetHandler(assetService)

	catalogRepo := catalog.NewCatalogRepository(repo)
	catalogHandler := catalog.NewCatalogHandler(catalogRepo)

	needsRepo := needs.NewNeedsRepository(repo)
	needHandler := needs.NewNeedHandler(needsRepo)

	changeRepo := changes.NewChangeRepository(repo)
	changeHandler := changes.NewChangeHandler(changeRepo)

	qrService := qrcodes.NewQRCodeService(assetsRepo, cfg.FrontendBaseURL, logger)
	qrHandler := qrcodes.NewQRCodeHandler(qrService)

	exportService := export.NewExportService(assetsRepo, repo)
	exportHandler := export.NewExportHandler(exportService)

	userRepo := users.NewRepository(repo)
	userHandler := users.NewHandler(userRepo)

	loginHandler := security.NewLoginHandler(repo)

	return &Container{
		Repository:     repo,
		LoginHandler:   loginHandler,
		AssetHandler:   assetHandler,
		CatalogHandler: catalogHandler,
		NeedHandler:    needHandler,
		ChangeHandler:  changeHandler,
		QRCodeHandler:  qrHandler,
		ExportHandler:  exportHandler,
		UserHandler:    userHandler,
	}
}
