package assets

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/l4greenl/it-inventory/internal/changes"
	"github.com/l4greenl/it-inventory/internal/repository"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAssetRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewRepository(db)
	service := NewAssetService(NewAssetsRepository(repo), repo, changes.NewRecorder(), zap.NewNop())
	handler := NewAssetHandler(service)

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterPublicRoutes(api)
	handler.RegisterProtectedRoutes(api)

	return router, mock
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	buf := bytes.NewBuffer(nil)
	if body != nil {
		payload, _ := json.Marshal(body)
		buf = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetAssetInvalidID(t *testing.T) {
	router, mock := newAssetRouter(t)

	w := doJSON(router, http.MethodGet, "/api/assets/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAssetNotFound(t *testing.T) {
	router, mock := newAssetRouter(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := doJSON(router, http.MethodGet, "/api/assets/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAssetBuildsFullName(t *testing.T) {
	router, mock := newAssetRouter(t)

	rows := sqlmock.NewRows([]string{
		"id", "inventory_number", "brand", "model", "type_id", "department_id",
		"purchase_date", "responsible_person", "status_id", "type_name",
	}).AddRow(7, "INV-007", "HP", "ProBook", 1, 2, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), 3, 4, "Ноутбук")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	w := doJSON(router, http.MethodGet, "/api/assets/7", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var asset models.Asset
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &asset))
	assert.Equal(t, "Ноутбук HP ProBook", asset.FullName)
	assert.Equal(t, "Ноутбук", asset.CategoryName)
	assert.Equal(t, "2024-05-10", asset.PurchaseDate)
}

func TestCreateAssetValidationResponse(t *testing.T) {
	router, mock := newAssetRouter(t)

	w := doJSON(router, http.MethodPost, "/api/assets", gin.H{"brand": "HP"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body struct {
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Missing, "inventory_number")
	assert.Contains(t, body.Missing, "purchase_date")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAssetUnknownIDReturns404(t *testing.T) {
	router, mock := newAssetRouter(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	payload := gin.H{
		"inventory_number":   "INV-001",
		"type_id":            1,
		"status_id":          2,
		"responsible_person": 3,
		"purchase_date":      "2024-05-10",
	}
	w := doJSON(router, http.MethodPut, "/api/assets/999", payload)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBatchDeleteRequiresIDs(t *testing.T) {
	router, mock := newAssetRouter(t)

	w := doJSON(router, http.MethodDelete, "/api/assets/batch-delete", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
