package catalog

import (
	"errors"
	"fmt"

	"github.com/l4greenl/it-inventory/internal/repository"
	custom_error "github.com/l4greenl/it-inventory/pkg/errors"
	"github.com/l4greenl/it-inventory/pkg/metadata"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var ErrNotFound = errors.New("catalog entry not found")

// ErrUnknownProperties signals a type-property replacement referencing
// property ids that do not exist.
var ErrUnknownProperties = errors.New("some properties were not found")

type CatalogRepository struct {
	Repository *repository.Repository
}

func NewCatalogRepository(r *repository.Repository) *CatalogRepository {
	return &CatalogRepository{Repository: r}
}

func (r *CatalogRepository) ListReferences(table string) ([]models.Reference, error) {
	entries := []models.Reference{}

	query := r.Repository.GoquDBWrapper.
		Select("id", "name").
		From(table).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("unable to fetch %s: %w", table, err)
	}

	return entries, nil
}

func (r *CatalogRepository) CreateReference(table, name string) (*models.Reference, error) {
	entry := models.Reference{Name: name}

	query := r.Repository.GoquDBWrapper.
		Insert(table).
		Rows(goqu.Record{"name": name}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&entry.ID); err != nil {
		if wrapped := custom_error.FromPqError(err, "Duplicate name in "+table); wrapped != err {
			return nil, wrapped
		}
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return &entry, nil
}

func (r *CatalogRepository) RenameReference(table string, id int, name string) (*models.Reference, error) {
	query := r.Repository.GoquDBWrapper.
		Update(table).
		Set(goqu.Record{"name": name}).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name")

	var entry models.Reference
	found, err := query.Executor().ScanStruct(&entry)
	if err != nil {
		if wrapped := custom_error.FromPqError(err, "Duplicate name in "+table); wrapped != err {
			return nil, wrapped
		}
		return nil, fmt.Errorf("failed to update %s %d: %w", table, id, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	return &entry, nil
}

func (r *CatalogRepository) DeleteReference(table string, id int) error {
	result, err := r.Repository.GoquDBWrapper.
		Delete(table).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		if wrapped := custom_error.FromPqError(err, "Entry in "+table+" is in use"); wrapped != err {
			return wrapped
		}
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *CatalogRepository) ListEmployees() ([]models.Employee, error) {
	employees := []models.Employee{}

	query := r.Repository.GoquDBWrapper.
		From(goqu.T("employees").As("e")).
		LeftJoin(
			goqu.T("departments").As("d"),
			goqu.On(goqu.Ex{"e.department_id": goqu.I("d.id")}),
		).
		Select(
			goqu.I("e.id").As("id"),
			goqu.I("e.name").As("name"),
			goqu.I("e.department_id").As("department_id"),
			goqu.I("d.name").As("department_name"),
		).
		Order(goqu.I("e.id").Asc())

	if err := query.Executor().ScanStructs(&employees); err != nil {
		return nil, fmt.Errorf("unable to fetch employees: %w", err)
	}

	return employees, nil
}

func (r *CatalogRepository) CreateEmployee(name string, departmentID int) (*models.Employee, error) {
	employee := models.Employee{Name: name, DepartmentID: departmentID}

	query := r.Repository.GoquDBWrapper.
		Insert("employees").
		Rows(goqu.Record{"name": name, "department_id": departmentID}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&employee.ID); err != nil {
		if wrapped := custom_error.FromPqError(err, "Employee references a missing department"); wrapped != err {
			return nil, wrapped
		}
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}

	if name, err := r.departmentName(departmentID); err == nil && name != "" {
		employee.DepartmentName = &name
	}

	return &employee, nil
}

func (r *CatalogRepository) UpdateEmployee(id int, name string, departmentID int) (*models.Employee, error) {
	query := r.Repository.GoquDBWrapper.
		Update("employees").
		Set(goqu.Record{"name": name, "department_id": departmentID}).
		Where(goqu.Ex{"id": id}).
		Returning("id", "name", "department_id")

	var employee models.Employee
	found, err := query.Executor().ScanStruct(&employee)
	if err != nil {
		if wrapped := custom_error.FromPqError(err, "Employee references a missing department"); wrapped != err {
			return nil, wrapped
		}
		return nil, fmt.Errorf("failed to update employee %d: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}

	if name, err := r.departmentName(employee.DepartmentID); err == nil && name != "" {
		employee.DepartmentName = &name
	}

	return &employee, nil
}

func (r *CatalogRepository) DeleteEmployee(id int) error {
	return r.DeleteReference("employees", id)
}

func (r *CatalogRepository) departmentName(id int) (string, error) {
	var name string
	found, err := r.Repository.GoquDBWrapper.
		Select("name").
		From("departments").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanVal(&name)
	if err != nil || !found {
		return "", err
	}
	return name, nil
}

func (r *CatalogRepository) TypeExists(id int) (bool, error) {
	var count int
	if _, err := r.Repository.GoquDBWrapper.
		Select(goqu.COUNT("id")).
		From("types").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanVal(&count); err != nil {
		return false, fmt.Errorf("unable to check type %d: %w", id, err)
	}
	return count > 0, nil
}

// GetTypeProperties lists the properties bound to a type, each with its
// canonical dynamic-field key.
func (r *CatalogRepository) GetTypeProperties(typeID int) ([]models.TypeProperty, error) {
	rows := []models.Reference{}

	query := r.Repository.GoquDBWrapper.
		From(goqu.T("type_properties").As("tp")).
		Join(
			goqu.T("properties").As("p"),
			goqu.On(goqu.Ex{"tp.property_id": goqu.I("p.id")}),
		).
		Select(
			goqu.I("p.id").As("id"),
			goqu.I("p.name").As("name"),
		).
		Where(goqu.Ex{"tp.type_id": typeID}).
		Order(goqu.I("p.id").Asc())

	if err := query.Executor().ScanStructs(&rows); err != nil {
		return nil, fmt.Errorf("unable to fetch properties of type %d: %w", typeID, err)
	}

	properties := make([]models.TypeProperty, 0, len(rows))
	for _, row := range rows {
		properties = append(properties, models.TypeProperty{
			ID:   row.ID,
			Name: row.Name,
			Key:  metadata.PropertyFieldKey(row.Name),
		})
	}

	return properties, nil
}

// ReplaceTypeProperties swaps the whole association set atomically.
func (r *CatalogRepository) ReplaceTypeProperties(typeID int, propertyIDs []int) error {
	seen := make(map[int]struct{}, len(propertyIDs))
	unique := make([]int, 0, len(propertyIDs))
	for _, id := range propertyIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	propertyIDs = unique

	return repository.WithTransaction(r.Repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		if len(propertyIDs) > 0 {
			var count int
			if _, err := tx.
				Select(goqu.COUNT("id")).
				From("properties").
				Where(goqu.Ex{"id": propertyIDs}).
				Executor().
				ScanVal(&count); err != nil {
				return fmt.Errorf("unable to validate property ids: %w", err)
			}
			if count != len(propertyIDs) {
				return ErrUnknownProperties
			}
		}

		if _, err := tx.Delete("type_properties").
			Where(goqu.Ex{"type_id": typeID}).
			Executor().
			Exec(); err != nil {
			return fmt.Errorf("failed to clear properties of type %d: %w", typeID, err)
		}

		for _, propertyID := range propertyIDs {
			if _, err := tx.Insert("type_properties").
				Rows(goqu.Record{"type_id": typeID, "property_id": propertyID}).
				Executor().
				Exec(); err != nil {
				return fmt.Errorf("failed to bind property %d to type %d: %w", propertyID, typeID, err)
			}
		}

		return nil
	})
}
