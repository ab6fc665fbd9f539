package export

import (
	"fmt"
	"strconv"

	"github.com/l4greenl/it-inventory/internal/assets"
	"github.com/l4greenl/it-inventory/internal/repository"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

// column describes one exportable table column. Base columns are always
// present, the rest are opt-in through the extra_columns request field.
type column struct {
	key    string
	header string
	value  func(asset *models.Asset, names *nameIndex) string
}

var baseColumns = []column{
	{key: "inventory_number", header: "Инвентарный номер", value: func(a *models.Asset, _ *nameIndex) string {
		return a.InventoryNumber
	}},
	{key: "full_name", header: "Наименование", value: func(a *models.Asset, _ *nameIndex) string {
		return a.FullName
	}},
	{key: "responsible_person", header: "Ответственный", value: func(a *models.Asset, n *nameIndex) string {
		return n.employee(a.ResponsiblePerson)
	}},
	{key: "department", header: "Отдел (подразделение)", value: func(a *models.Asset, n *nameIndex) string {
		return n.department(a.DepartmentID)
	}},
	{key: "room", header: "Помещение", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.Room)
	}},
}

var extraColumns = []column{
	{key: "status", header: "Статус", value: func(a *models.Asset, n *nameIndex) string {
		return n.status(a.StatusID)
	}},
	{key: "purchase_date", header: "Дата покупки", value: func(a *models.Asset, _ *nameIndex) string {
		return a.PurchaseDate
	}},
	{key: "actual_user", header: "Фактический пользователь", value: func(a *models.Asset, n *nameIndex) string {
		if a.ActualUser == nil {
			return ""
		}
		return n.employee(*a.ActualUser)
	}},
	{key: "serial_number", header: "Серийный номер", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.SerialNumber)
	}},
	{key: "comments", header: "Комментарии", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.Comments)
	}},
	{key: "diagonal", header: "Диагональ", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.Diagonal)
	}},
	{key: "CPU", header: "Процессор", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.CPU)
	}},
	{key: "RAM", header: "Оперативная память", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.RAM)
	}},
	{key: "Drive", header: "Диск", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.Drive)
	}},
	{key: "OS", header: "Операционная система", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.OS)
	}},
	{key: "IP_address", header: "IP-адрес", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.IPAddress)
	}},
	{key: "number", header: "Внутренний номер", value: func(a *models.Asset, _ *nameIndex) string {
		return text(a.Number)
	}},
}

func text(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// nameIndex resolves reference ids to display names, falling back to the
// raw id when the reference row is gone.
type nameIndex struct {
	employees   map[int]string
	departments map[int]string
	statuses    map[int]string
}

func (n *nameIndex) employee(id int) string   { return n.lookup(n.employees, id) }
func (n *nameIndex) department(id int) string { return n.lookup(n.departments, id) }
func (n *nameIndex) status(id int) string     { return n.lookup(n.statuses, id) }

func (n *nameIndex) lookup(names map[int]string, id int) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "#" + strconv.Itoa(id)
}

type ExportService struct {
	assetsRepo *assets.AssetsRepository
	repository *repository.Repository
}

func NewExportService(assetsRepo *assets.AssetsRepository, repo *repository.Repository) *ExportService {
	return &ExportService{assetsRepo: assetsRepo, repository: repo}
}

// Table is a fully resolved export: headers plus one row of display
// strings per asset.
type Table struct {
	Headers []string
	Rows    [][]string
}

// BuildTable assembles the export table. Empty ids means every asset.
// Unknown extra column keys are rejected so typos do not silently drop
// a column from the report.
func (s *ExportService) BuildTable(ids []int, extraKeys []string) (*Table, error) {
	columns, err := selectColumns(extraKeys)
	if err != nil {
		return nil, err
	}

	exportAssets, err := s.loadAssets(ids)
	if err != nil {
		return nil, err
	}

	names, err := s.loadNames()
	if err != nil {
		return nil, err
	}

	table := &Table{
		Headers: make([]string, 0, len(columns)),
		Rows:    make([][]string, 0, len(exportAssets)),
	}
	for _, col := range columns {
		table.Headers = append(table.Headers, col.header)
	}
	for i := range exportAssets {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			row = append(row, col.value(&exportAssets[i], names))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func selectColumns(extraKeys []string) ([]column, error) {
	columns := make([]column, len(baseColumns))
	copy(columns, baseColumns)

	for _, key := range extraKeys {
		found := false
		for _, col := range extraColumns {
			if col.key == key {
				columns = append(columns, col)
				found = true
				break
			}
		}
		if !found {
			return nil, &UnknownColumnError{Key: key}
		}
	}

	return columns, nil
}

type UnknownColumnError struct {
	Key string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown export column: %s", e.Key)
}

func (s *ExportService) loadAssets(ids []int) ([]models.Asset, error) {
	if len(ids) == 0 {
		return s.assetsRepo.GetAssets("", "", "")
	}

	records, err := s.assetsRepo.GetAssetRecords(ids)
	if err != nil {
		return nil, err
	}

	exportAssets := make([]models.Asset, 0, len(records))
	for i := range records {
		exportAssets = append(exportAssets, records[i].TransformToAsset())
	}
	return exportAssets, nil
}

func (s *ExportService) loadNames() (*nameIndex, error) {
	employees, err := s.nameMap("employees")
	if err != nil {
		return nil, err
	}
	departments, err := s.nameMap("departments")
	if err != nil {
		return nil, err
	}
	statuses, err := s.nameMap("statuses")
	if err != nil {
		return nil, err
	}

	return &nameIndex{
		employees:   employees,
		departments: departments,
		statuses:    statuses,
	}, nil
}

func (s *ExportService) nameMap(table string) (map[int]string, error) {
	var entries []models.Reference
	err := s.repository.GoquDBWrapper.
		From(table).
		Select(goqu.I("id"), goqu.I("name")).
		ScanStructs(&entries)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", table, err)
	}

	names := make(map[int]string, len(entries))
	for _, entry := range entries {
		names[entry.ID] = entry.Name
	}
	return names, nil
}
