package assets

import (
	"regexp"
	"testing"
	"time"

	"github.com/l4greenl/it-inventory/internal/changes"
	"github.com/l4greenl/it-inventory/internal/repository"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newServiceWithMock(t *testing.T) (*AssetService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewRepository(db)
	assetsRepo := NewAssetsRepository(repo)
	service := NewAssetService(assetsRepo, repo, changes.NewRecorder(), zap.NewNop())

	return service, mock
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func storedRecord() models.FlatAssetRecord {
	return models.FlatAssetRecord{
		ID:                7,
		InventoryNumber:   "INV-007",
		Brand:             strPtr("HP"),
		Model:             strPtr("ProBook"),
		TypeID:            1,
		DepartmentID:      2,
		Room:              strPtr("101"),
		PurchaseDate:      time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		ResponsiblePerson: 3,
		Comments:          strPtr("ok"),
		StatusID:          4,
		TypeName:          strPtr("Ноутбук"),
	}
}

func matchingRequest() AssetRequest {
	return AssetRequest{
		InventoryNumber:   "INV-007",
		Brand:             strPtr("HP"),
		Model:             strPtr("ProBook"),
		TypeID:            1,
		Room:              strPtr("101"),
		PurchaseDate:      "2024-05-10",
		ResponsiblePerson: 3,
		Comments:          strPtr("ok"),
		StatusID:          4,
	}
}

func TestCreateAssetValidationFailsBeforeAnyQuery(t *testing.T) {
	service, mock := newServiceWithMock(t)

	_, err := service.CreateAsset(AssetRequest{})

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAssetRejectsUnknownResponsiblePerson(t *testing.T) {
	service, mock := newServiceWithMock(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "department_id"}))

	req := matchingRequest()
	req.ResponsiblePerson = 99

	_, err := service.CreateAsset(req)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"responsible_person"}, validationErr.Missing)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComputeDiffsNoChanges(t *testing.T) {
	service, mock := newServiceWithMock(t)

	old := storedRecord()
	diffs, err := service.computeDiffs(&old, matchingRequest(), old.DepartmentID)

	require.NoError(t, err)
	assert.Empty(t, diffs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComputeDiffsTextFields(t *testing.T) {
	service, _ := newServiceWithMock(t)

	old := storedRecord()
	req := matchingRequest()
	req.Room = strPtr("215")
	req.Comments = nil
	req.CPU = strPtr("i5-1240P")

	diffs, err := service.computeDiffs(&old, req, old.DepartmentID)
	require.NoError(t, err)

	assert.Equal(t, []fieldDiff{
		{field: "room", oldValue: "101", newValue: "215"},
		{field: "comments", oldValue: "ok", newValue: "-"},
		{field: "CPU", oldValue: "-", newValue: "i5-1240P"},
	}, diffs)
}

func TestComputeDiffsResolvesDepartmentNames(t *testing.T) {
	service, mock := newServiceWithMock(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Бухгалтерия"))
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("ИТ-отдел"))

	old := storedRecord()
	diffs, err := service.computeDiffs(&old, matchingRequest(), 5)
	require.NoError(t, err)

	require.Len(t, diffs, 1)
	assert.Equal(t, fieldDiff{field: "department_id", oldValue: "Бухгалтерия", newValue: "ИТ-отдел"}, diffs[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComputeDiffsFallsBackToIDWhenReferenceMissing(t *testing.T) {
	service, mock := newServiceWithMock(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Выдан"))

	old := storedRecord()
	req := matchingRequest()
	req.StatusID = 9

	diffs, err := service.computeDiffs(&old, req, old.DepartmentID)
	require.NoError(t, err)

	require.Len(t, diffs, 1)
	assert.Equal(t, fieldDiff{field: "status_id", oldValue: "#4", newValue: "Выдан"}, diffs[0])
}

func TestComputeDiffsActualUserNilShownAsDash(t *testing.T) {
	service, mock := newServiceWithMock(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Иванов И.И."))

	old := storedRecord()
	req := matchingRequest()
	req.ActualUser = intPtr(12)

	diffs, err := service.computeDiffs(&old, req, old.DepartmentID)
	require.NoError(t, err)

	require.Len(t, diffs, 1)
	assert.Equal(t, fieldDiff{field: "actual_user", oldValue: "-", newValue: "Иванов И.И."}, diffs[0])
}

func TestCreateAssetDerivesDepartmentFromResponsible(t *testing.T) {
	service, mock := newServiceWithMock(t)

	req := matchingRequest()
	req.DepartmentID = intPtr(9)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "department_id"}).
			AddRow(3, "Иванов И.И.", 3))
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Ноутбук"))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "assets"`) + ".*" +
		regexp.QuoteMeta(`VALUES (NULL, 'HP', 'ok', NULL, 3,`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "changes"`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	reload := sqlmock.NewRows([]string{"id", "inventory_number", "brand", "model", "type_id", "department_id", "room", "purchase_date", "responsible_person", "status_id", "type_name"}).
		AddRow(7, "INV-007", "HP", "ProBook", 1, 3, "101", time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), 3, 4, "Ноутбук")
	mock.ExpectQuery("SELECT").WillReturnRows(reload)

	asset, err := service.CreateAsset(req)

	require.NoError(t, err)
	assert.Equal(t, 3, asset.DepartmentID)
	assert.Equal(t, "Ноутбук HP ProBook", asset.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAssetRoomChangeWritesOneChangeAndOneMove(t *testing.T) {
	service, mock := newServiceWithMock(t)

	stored := sqlmock.NewRows([]string{"id", "inventory_number", "brand", "model", "type_id", "department_id", "room", "purchase_date", "responsible_person", "status_id", "comments", "type_name"}).
		AddRow(7, "INV-007", "HP", "ProBook", 1, 2, "101", time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), 3, 4, "ok", "Ноутбук")
	mock.ExpectQuery("SELECT").WillReturnRows(stored)
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "department_id"}).
			AddRow(3, "Иванов И.И.", 2))
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Ноутбук"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "assets"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "changes"`) + ".*" +
		regexp.QuoteMeta(`('updated', 7, 'Ноутбук HP ProBook', 'room', 'INV-007', '215', '101')`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "moves"`) + ".*" +
		regexp.QuoteMeta(`(7, 'Ноутбук HP ProBook', '101', 'INV-007', 'room', '215')`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	reload := sqlmock.NewRows([]string{"id", "inventory_number", "brand", "model", "type_id", "department_id", "room", "purchase_date", "responsible_person", "status_id", "comments", "type_name"}).
		AddRow(7, "INV-007", "HP", "ProBook", 1, 2, "215", time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), 3, 4, "ok", "Ноутбук")
	mock.ExpectQuery("SELECT").WillReturnRows(reload)

	req := matchingRequest()
	req.Room = strPtr("215")

	asset, err := service.UpdateAsset(7, req)

	require.NoError(t, err)
	require.NotNil(t, asset.Room)
	assert.Equal(t, "215", *asset.Room)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAssetsRejectsUnknownID(t *testing.T) {
	service, mock := newServiceWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "inventory_number", "type_id", "department_id", "purchase_date", "responsible_person", "status_id"}).
		AddRow(7, "INV-007", 1, 2, time.Now(), 3, 4)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	err := service.DeleteAssets([]int{7, 404})

	assert.ErrorIs(t, err, ErrAssetNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAssetsWritesDeletionLogInTransaction(t *testing.T) {
	service, mock := newServiceWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "inventory_number", "type_id", "department_id", "purchase_date", "responsible_person", "status_id", "type_name"}).
		AddRow(7, "INV-007", 1, 2, time.Now(), 3, 4, "Ноутбук")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("DELETE FROM").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := service.DeleteAssets([]int{7})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
