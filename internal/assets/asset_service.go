package assets

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/l4greenl/it-inventory/internal/changes"
	"github.com/l4greenl/it-inventory/internal/repository"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"
)

var ErrAssetNotFound = errors.New("asset not found")

type AssetService struct {
	assetsRepo *AssetsRepository
	repo       *repository.Repository
	recorder   *changes.Recorder
	logger     *zap.Logger
}

func NewAssetService(assetsRepo *AssetsRepository, repo *repository.Repository, recorder *changes.Recorder, logger *zap.Logger) *AssetService {
	return &AssetService{
		assetsRepo: assetsRepo,
		repo:       repo,
		recorder:   recorder,
		logger:     logger,
	}
}

// CreateAsset validates the payload, derives the department from the
// responsible employee and writes the asset together with its "created"
// change record in one transaction.
func (s *AssetService) CreateAsset(req AssetRequest) (*models.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employee, found, err := s.assetsRepo.GetEmployee(req.ResponsiblePerson)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &ValidationError{Missing: []string{"responsible_person"}}
	}

	assetName, err := s.assetName(req)
	if err != nil {
		return nil, err
	}

	var assetID int
	err = repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		assetID, err = s.assetsRepo.PersistAsset(tx, req, employee.DepartmentID)
		if err != nil {
			return err
		}

		return s.recorder.Record(tx, changes.Created(assetID, req.InventoryNumber, assetName))
	})
	if err != nil {
		return nil, err
	}

	record, _, err := s.assetsRepo.GetAssetRecord(assetID)
	if err != nil {
		return nil, err
	}

	asset := record.TransformToAsset()
	return &asset, nil
}

// UpdateAsset re-derives the department, diffs every scalar field and
// appends one "updated" change row per difference. Room and department
// changes additionally append one move row each.
func (s *AssetService) UpdateAsset(id int, req AssetRequest) (*models.Asset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	old, found, err := s.assetsRepo.GetAssetRecord(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrAssetNotFound
	}

	employee, found, err := s.assetsRepo.GetEmployee(req.ResponsiblePerson)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &ValidationError{Missing: []string{"responsible_person"}}
	}

	diffs, err := s.computeDiffs(old, req, employee.DepartmentID)
	if err != nil {
		return nil, err
	}

	if len(diffs) == 0 {
		asset := old.TransformToAsset()
		return &asset, nil
	}

	assetName, err := s.assetName(req)
	if err != nil {
		return nil, err
	}

	err = repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if err := s.assetsRepo.UpdateAsset(tx, id, req, employee.DepartmentID); err != nil {
			return err
		}

		for _, diff := range diffs {
			entry := changes.Entry{
				AssetID:         &id,
				InventoryNumber: req.InventoryNumber,
				AssetName:       assetName,
				Action:          models.ActionUpdated,
				Field:           diff.field,
				OldValue:        diff.oldValue,
				NewValue:        diff.newValue,
			}
			if err := s.recorder.Record(tx, entry); err != nil {
				return err
			}

			var moveType string
			switch diff.field {
			case "room":
				moveType = models.MoveTypeRoom
			case "department_id":
				moveType = models.MoveTypeDepartment
			default:
				continue
			}

			move := changes.MoveEntry{
				AssetID:         &id,
				InventoryNumber: req.InventoryNumber,
				AssetName:       assetName,
				FromValue:       diff.oldValue,
				ToValue:         diff.newValue,
				MoveType:        moveType,
			}
			if err := s.recorder.RecordMove(tx, move); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	record, _, err := s.assetsRepo.GetAssetRecord(id)
	if err != nil {
		return nil, err
	}

	asset := record.TransformToAsset()
	return &asset, nil
}

func (s *AssetService) DeleteAsset(id int) error {
	return s.DeleteAssets([]int{id})
}

// DeleteAssets removes all listed assets atomically; a single unknown id
// fails the whole batch.
func (s *AssetService) DeleteAssets(ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	records, err := s.assetsRepo.GetAssetRecords(ids)
	if err != nil {
		return err
	}
	if len(records) != len(uniqueIDs(ids)) {
		return ErrAssetNotFound
	}

	return repository.WithTransaction(s.repo.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		for i := range records {
			record := &records[i]
			asset := record.TransformToAsset()
			if err := s.recorder.Record(tx, changes.Deleted(record.ID, record.InventoryNumber, asset.FullName)); err != nil {
				return err
			}
		}

		return s.assetsRepo.RemoveAssets(tx, ids)
	})
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	unique := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func (s *AssetService) assetName(req AssetRequest) (string, error) {
	typeName, err := s.assetsRepo.TypeName(req.TypeID)
	if err != nil {
		return "", err
	}
	if typeName == "" {
		typeName = models.UntypedAssetName
	}
	return models.AssetFullName(typeName, req.Brand, req.Model), nil
}

type fieldDiff struct {
	field    string
	oldValue string
	newValue string
}

// computeDiffs compares the stored record against the incoming payload
// field by field. Old and new values are resolved to display form (names
// instead of reference IDs) before they reach the change log.
func (s *AssetService) computeDiffs(old *models.FlatAssetRecord, req AssetRequest, newDepartmentID int) ([]fieldDiff, error) {
	var diffs []fieldDiff

	appendText := func(field string, oldVal *string, newVal *string) {
		if textValue(oldVal) != textValue(newVal) {
			diffs = append(diffs, fieldDiff{field, displayText(oldVal), displayText(newVal)})
		}
	}

	appendText("serial_number", old.SerialNumber, req.SerialNumber)
	if old.InventoryNumber != req.InventoryNumber {
		diffs = append(diffs, fieldDiff{"inventory_number", old.InventoryNumber, req.InventoryNumber})
	}
	appendText("brand", old.Brand, req.Brand)
	appendText("model", old.Model, req.Model)

	if old.TypeID != req.TypeID {
		oldName, err := s.displayName(s.assetsRepo.TypeName, old.TypeID)
		if err != nil {
			return nil, err
		}
		newName, err := s.displayName(s.assetsRepo.TypeName, req.TypeID)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, fieldDiff{"type_id", oldName, newName})
	}

	if old.DepartmentID != newDepartmentID {
		oldName, err := s.displayName(s.assetsRepo.DepartmentName, old.DepartmentID)
		if err != nil {
			return nil, err
		}
		newName, err := s.displayName(s.assetsRepo.DepartmentName, newDepartmentID)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, fieldDiff{"department_id", oldName, newName})
	}

	appendText("room", old.Room, req.Room)

	oldDate := old.PurchaseDate.Format("2006-01-02")
	if oldDate != req.PurchaseDate {
		diffs = append(diffs, fieldDiff{"purchase_date", oldDate, req.PurchaseDate})
	}

	if old.ResponsiblePerson != req.ResponsiblePerson {
		oldName, err := s.displayName(s.assetsRepo.EmployeeName, old.ResponsiblePerson)
		if err != nil {
			return nil, err
		}
		newName, err := s.displayName(s.assetsRepo.EmployeeName, req.ResponsiblePerson)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, fieldDiff{"responsible_person", oldName, newName})
	}

	if intValue(old.ActualUser) != intValue(req.ActualUser) {
		oldName, err := s.displayEmployee(old.ActualUser)
		if err != nil {
			return nil, err
		}
		newName, err := s.displayEmployee(req.ActualUser)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, fieldDiff{"actual_user", oldName, newName})
	}

	appendText("comments", old.Comments, req.Comments)

	if old.StatusID != req.StatusID {
		oldName, err := s.displayName(s.assetsRepo.StatusName, old.StatusID)
		if err != nil {
			return nil, err
		}
		newName, err := s.displayName(s.assetsRepo.StatusName, req.StatusID)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, fieldDiff{"status_id", oldName, newName})
	}

	appendText("diagonal", old.Diagonal, req.Diagonal)
	appendText("CPU", old.CPU, req.CPU)
	appendText("RAM", old.RAM, req.RAM)
	appendText("Drive", old.Drive, req.Drive)
	appendText("OS", old.OS, req.OS)
	appendText("IP_address", old.IPAddress, req.IPAddress)
	appendText("number", old.Number, req.Number)

	return diffs, nil
}

func (s *AssetService) displayName(lookup func(int) (string, error), id int) (string, error) {
	name, err := lookup(id)
	if err != nil {
		return "", err
	}
	if name == "" {
		s.logger.Warn("reference lookup missed during change logging", zap.Int("id", id))
		return "#" + strconv.Itoa(id), nil
	}
	return name, nil
}

func (s *AssetService) displayEmployee(id *int) (string, error) {
	if id == nil {
		return "-", nil
	}
	return s.displayName(s.assetsRepo.EmployeeName, *id)
}

func textValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func displayText(p *string) string {
	if p == nil || *p == "" {
		return "-"
	}
	return *p
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// GetAsset returns the asset or ErrAssetNotFound.
func (s *AssetService) GetAsset(id int) (*models.Asset, error) {
	record, found, err := s.assetsRepo.GetAssetRecord(id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrAssetNotFound
	}

	asset := record.TransformToAsset()
	return &asset, nil
}

// GetAssets lists assets with optional search and ordering.
func (s *AssetService) GetAssets(search, sortBy, order string) ([]models.Asset, error) {
	assets, err := s.assetsRepo.GetAssets(search, sortBy, order)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	return assets, nil
}
