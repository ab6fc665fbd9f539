package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/l4greenl/it-inventory/internal/repository"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	handler := NewCatalogHandler(NewCatalogRepository(repository.NewRepository(db)))

	router := gin.New()
	api := router.Group("/api")
	handler.RegisterPublicRoutes(api)
	handler.RegisterProtectedRoutes(api)

	return router, mock
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListReferences(t *testing.T) {
	router, mock := newCatalogRouter(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Ноутбук").
			AddRow(2, "Монитор"))

	w := performJSON(router, http.MethodGet, "/api/types", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var entries []models.Reference
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "Ноутбук", entries[0].Name)
}

func TestCreateReferenceRejectsBlankName(t *testing.T) {
	router, mock := newCatalogRouter(t)

	w := performJSON(router, http.MethodPost, "/api/statuses", gin.H{"name": "   "})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenameReferenceInvalidID(t *testing.T) {
	router, mock := newCatalogRouter(t)

	w := performJSON(router, http.MethodPut, "/api/departments/abc", gin.H{"name": "ИТ"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReferenceNotFound(t *testing.T) {
	router, mock := newCatalogRouter(t)

	mock.ExpectExec("DELETE FROM").WillReturnResult(sqlmock.NewResult(0, 0))

	w := performJSON(router, http.MethodDelete, "/api/properties/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEmployeeRequiresDepartment(t *testing.T) {
	router, mock := newCatalogRouter(t)

	w := performJSON(router, http.MethodPost, "/api/employees", gin.H{"name": "Иванов И.И."})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTypePropertiesUnknownType(t *testing.T) {
	router, mock := newCatalogRouter(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	w := performJSON(router, http.MethodGet, "/api/types/99/properties", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTypePropertiesIncludesFieldKeys(t *testing.T) {
	router, mock := newCatalogRouter(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(3, "Процессор").
			AddRow(4, "IP-адрес"))

	w := performJSON(router, http.MethodGet, "/api/types/1/properties", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var properties []models.TypeProperty
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &properties))
	require.Len(t, properties, 2)
	assert.Equal(t, "CPU", properties[0].Key)
	assert.Equal(t, "IP_address", properties[1].Key)
}

func TestSetTypePropertiesRejectsUnknownIDs(t *testing.T) {
	router, mock := newCatalogRouter(t)

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	w := performJSON(router, http.MethodPut, "/api/types/1/properties", gin.H{"property_ids": []int{3, 404}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
