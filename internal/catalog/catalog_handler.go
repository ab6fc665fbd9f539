package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	custom_error "github.com/l4greenl/it-inventory/pkg/errors"

	"github.com/gin-gonic/gin"
)

// referenceResource binds one name-keyed table to its route segment.
type referenceResource struct {
	path  string
	table string
	label string
}

var referenceResources = []referenceResource{
	{path: "types", table: "types", label: "Type"},
	{path: "statuses", table: "statuses", label: "Status"},
	{path: "departments", table: "departments", label: "Department"},
	{path: "properties", table: "properties", label: "Property"},
}

type CatalogHandler struct {
	repository *CatalogRepository
}

func NewCatalogHandler(r *CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repository: r}
}

func (h *CatalogHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	for _, res := range referenceResources {
		res := res
		router.GET("/"+res.path, func(c *gin.Context) { h.list(c, res) })
	}
	router.GET("/employees", h.listEmployees)
	router.GET("/types/:id/properties", h.getTypeProperties)
}

func (h *CatalogHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	for _, res := range referenceResources {
		res := res
		router.POST("/"+res.path, func(c *gin.Context) { h.create(c, res) })
		router.PUT("/"+res.path+"/:id", func(c *gin.Context) { h.rename(c, res) })
		router.DELETE("/"+res.path+"/:id", func(c *gin.Context) { h.delete(c, res) })
	}

	router.POST("/employees", h.createEmployee)
	router.PUT("/employees/:id", h.updateEmployee)
	router.DELETE("/employees/:id", h.deleteEmployee)
	router.PUT("/types/:id/properties", h.setTypeProperties)
}

func (h *CatalogHandler) list(c *gin.Context, res referenceResource) {
	entries, err := h.repository.ListReferences(res.table)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch " + res.path, "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *CatalogHandler) create(c *gin.Context, res referenceResource) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	entry, err := h.repository.CreateReference(res.table, strings.TrimSpace(req.Name))
	if err != nil {
		h.writeRepositoryError(c, err, res)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *CatalogHandler) rename(c *gin.Context, res referenceResource) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	entry, err := h.repository.RenameReference(res.table, id, strings.TrimSpace(req.Name))
	if err != nil {
		h.writeRepositoryError(c, err, res)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *CatalogHandler) delete(c *gin.Context, res referenceResource) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.repository.DeleteReference(res.table, id); err != nil {
		h.writeRepositoryError(c, err, res)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": res.label + " deleted"})
}

func (h *CatalogHandler) listEmployees(c *gin.Context) {
	employees, err := h.repository.ListEmployees()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch employees", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, employees)
}

type employeeRequest struct {
	Name         string `json:"name"`
	DepartmentID int    `json:"department_id"`
}

func (e *employeeRequest) validate() bool {
	e.Name = strings.TrimSpace(e.Name)
	return e.Name != "" && e.DepartmentID != 0
}

func (h *CatalogHandler) createEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.validate() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and department are required"})
		return
	}

	employee, err := h.repository.CreateEmployee(req.Name, req.DepartmentID)
	if err != nil {
		h.writeRepositoryError(c, err, referenceResource{label: "Employee", path: "employees"})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

func (h *CatalogHandler) updateEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.validate() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and department are required"})
		return
	}

	employee, err := h.repository.UpdateEmployee(id, req.Name, req.DepartmentID)
	if err != nil {
		h.writeRepositoryError(c, err, referenceResource{label: "Employee", path: "employees"})
		return
	}

	c.JSON(http.StatusOK, employee)
}

func (h *CatalogHandler) deleteEmployee(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.repository.DeleteEmployee(id); err != nil {
		h.writeRepositoryError(c, err, referenceResource{label: "Employee", path: "employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

func (h *CatalogHandler) getTypeProperties(c *gin.Context) {
	typeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	exists, err := h.repository.TypeExists(typeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to check type", "details": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Type not found"})
		return
	}

	properties, err := h.repository.GetTypeProperties(typeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch type properties", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *CatalogHandler) setTypeProperties(c *gin.Context) {
	typeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	exists, err := h.repository.TypeExists(typeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to check type", "details": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Type not found"})
		return
	}

	var req struct {
		PropertyIDs []int `json:"property_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := h.repository.ReplaceTypeProperties(typeID, req.PropertyIDs); err != nil {
		if errors.Is(err, ErrUnknownProperties) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Some properties were not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update type properties", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Type properties updated"})
}

func (h *CatalogHandler) writeRepositoryError(c *gin.Context, err error, res referenceResource) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": res.label + " not found"})
		return
	}

	switch err.(type) {
	case *custom_error.UniqueViolationError:
		c.JSON(http.StatusConflict, gin.H{"error": "Name already exists"})
	case *custom_error.ForeignKeyViolationError:
		c.JSON(http.StatusConflict, gin.H{"error": "Entry is referenced by existing records"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed", "details": err.Error()})
	}
}
