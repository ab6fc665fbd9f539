package assets

import (
	"fmt"
	"time"

	"github.com/l4greenl/it-inventory/internal/repository"
	custom_error "github.com/l4greenl/it-inventory/pkg/errors"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type AssetsRepository struct {
	Repository *repository.Repository
}

func NewAssetsRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{Repository: r}
}

// sortableColumns whitelists the columns the listing accepts for ORDER BY.
var sortableColumns = map[string]string{
	"id":                 "a.id",
	"serial_number":      "a.serial_number",
	"inventory_number":   "a.inventory_number",
	"brand":              "a.brand",
	"model":              "a.model",
	"type_id":            "a.type_id",
	"department_id":      "a.department_id",
	"room":               "a.room",
	"purchase_date":      "a.purchase_date",
	"responsible_person": "a.responsible_person",
	"status_id":          "a.status_id",
}

func (r *AssetsRepository) baseQuery() *goqu.SelectDataset {
	return r.Repository.GoquDBWrapper.
		From(goqu.T("assets").As("a")).
		LeftJoin(
			goqu.T("types").As("t"),
			goqu.On(goqu.Ex{"a.type_id": goqu.I("t.id")}),
		).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.serial_number").As("serial_number"),
			goqu.I("a.inventory_number").As("inventory_number"),
			goqu.I("a.brand").As("brand"),
			goqu.I("a.model").As("model"),
			goqu.I("a.type_id").As("type_id"),
			goqu.I("a.department_id").As("department_id"),
			goqu.I("a.room").As("room"),
			goqu.I("a.purchase_date").As("purchase_date"),
			goqu.I("a.responsible_person").As("responsible_person"),
			goqu.I("a.actual_user").As("actual_user"),
			goqu.I("a.comments").As("comments"),
			goqu.I("a.status_id").As("status_id"),
			goqu.I("a.diagonal").As("diagonal"),
			goqu.I("a.cpu").As("cpu"),
			goqu.I("a.ram").As("ram"),
			goqu.I("a.drive").As("drive"),
			goqu.I("a.os").As("os"),
			goqu.I("a.ip_address").As("ip_address"),
			goqu.I("a.number").As("number"),
			goqu.I("t.name").As("type_name"),
		)
}

func (r *AssetsRepository) GetAssets(search, sortBy, order string) ([]models.Asset, error) {
	query := r.baseQuery()

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(goqu.Or(
			goqu.I("a.inventory_number").ILike(pattern),
			goqu.I("a.serial_number").ILike(pattern),
		))
	}

	column, ok := sortableColumns[sortBy]
	if !ok {
		column = "a.id"
	}
	if order == "desc" {
		query = query.Order(goqu.I(column).Desc())
	} else {
		query = query.Order(goqu.I(column).Asc())
	}

	var records []models.FlatAssetRecord
	if err := query.Executor().ScanStructs(&records); err != nil {
		return nil, fmt.Errorf("unable to fetch assets: %w", err)
	}

	assets := make([]models.Asset, 0, len(records))
	for i := range records {
		assets = append(assets, records[i].TransformToAsset())
	}

	return assets, nil
}

// GetAssetRecord returns the flat DB row, or found=false.
func (r *AssetsRepository) GetAssetRecord(id int) (*models.FlatAssetRecord, bool, error) {
	var record models.FlatAssetRecord

	found, err := r.baseQuery().
		Where(goqu.Ex{"a.id": id}).
		Executor().
		ScanStruct(&record)
	if err != nil {
		return nil, false, fmt.Errorf("unable to fetch asset %d: %w", id, err)
	}

	return &record, found, nil
}

func (r *AssetsRepository) GetAssetRecords(ids []int) ([]models.FlatAssetRecord, error) {
	var records []models.FlatAssetRecord

	err := r.baseQuery().
		Where(goqu.Ex{"a.id": ids}).
		Executor().
		ScanStructs(&records)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch assets: %w", err)
	}

	return records, nil
}

func assetRecord(req AssetRequest, departmentID int, purchaseDate time.Time) goqu.Record {
	return goqu.Record{
		"serial_number":      req.SerialNumber,
		"inventory_number":   req.InventoryNumber,
		"brand":              req.Brand,
		"model":              req.Model,
		"type_id":            req.TypeID,
		"department_id":      departmentID,
		"room":               req.Room,
		"purchase_date":      purchaseDate,
		"responsible_person": req.ResponsiblePerson,
		"actual_user":        req.ActualUser,
		"comments":           req.Comments,
		"status_id":          req.StatusID,
		"diagonal":           req.Diagonal,
		"cpu":                req.CPU,
		"ram":                req.RAM,
		"drive":              req.Drive,
		"os":                 req.OS,
		"ip_address":         req.IPAddress,
		"number":             req.Number,
	}
}

// PersistAsset inserts the asset inside tx and returns the new id.
func (r *AssetsRepository) PersistAsset(tx *goqu.TxDatabase, req AssetRequest, departmentID int) (int, error) {
	query := tx.Insert("assets").
		Rows(assetRecord(req, departmentID, req.purchaseDate())).
		Returning("id")

	var id int
	if _, err := query.Executor().ScanVal(&id); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return 0, custom_error.WrapDBError("Duplicate inventory number for asset", string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert asset record: %w", err)
	}

	return id, nil
}

func (r *AssetsRepository) UpdateAsset(tx *goqu.TxDatabase, id int, req AssetRequest, departmentID int) error {
	query := tx.Update("assets").
		Set(assetRecord(req, departmentID, req.purchaseDate())).
		Where(goqu.Ex{"id": id})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return custom_error.WrapDBError("Duplicate inventory number for asset", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update asset record %d: %w", id, err)
	}

	return nil
}

func (r *AssetsRepository) RemoveAssets(tx *goqu.TxDatabase, ids []int) error {
	if _, err := tx.Delete("assets").Where(goqu.Ex{"id": ids}).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to delete assets: %w", err)
	}
	return nil
}

// GetEmployee resolves the responsible person and, through it, the derived
// department.
func (r *AssetsRepository) GetEmployee(id int) (*models.Employee, bool, error) {
	var employee models.Employee

	found, err := r.Repository.GoquDBWrapper.
		Select("id", "name", "department_id").
		From("employees").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanStruct(&employee)
	if err != nil {
		return nil, false, fmt.Errorf("unable to fetch employee %d: %w", id, err)
	}

	return &employee, found, nil
}

func (r *AssetsRepository) lookupName(table string, id int) (string, error) {
	var name string

	found, err := r.Repository.GoquDBWrapper.
		Select("name").
		From(table).
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanVal(&name)
	if err != nil {
		return "", fmt.Errorf("unable to fetch name from %s: %w", table, err)
	}
	if !found {
		return "", nil
	}

	return name, nil
}

func (r *AssetsRepository) TypeName(id int) (string, error) {
	return r.lookupName("types", id)
}

func (r *AssetsRepository) StatusName(id int) (string, error) {
	return r.lookupName("statuses", id)
}

func (r *AssetsRepository) DepartmentName(id int) (string, error) {
	return r.lookupName("departments", id)
}

func (r *AssetsRepository) EmployeeName(id int) (string, error) {
	return r.lookupName("employees", id)
}
