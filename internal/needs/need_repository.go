package needs

import (
	"errors"
	"fmt"
	"time"

	"github.com/l4greenl/it-inventory/internal/repository"
	custom_error "github.com/l4greenl/it-inventory/pkg/errors"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var ErrNeedNotFound = errors.New("need not found")

type NeedsRepository struct {
	Repository *repository.Repository
}

func NewNeedsRepository(r *repository.Repository) *NeedsRepository {
	return &NeedsRepository{Repository: r}
}

func (r *NeedsRepository) GetNeeds() ([]models.Need, error) {
	var records []models.FlatNeedRecord
	err := r.Repository.GoquDBWrapper.
		From("needs").
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		ScanStructs(&records)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch needs: %w", err)
	}

	needs := make([]models.Need, 0, len(records))
	for i := range records {
		needs = append(needs, records[i].TransformToNeed())
	}

	return needs, nil
}

func (r *NeedsRepository) GetNeed(id int) (*models.Need, error) {
	var record models.FlatNeedRecord
	found, err := r.Repository.GoquDBWrapper.
		From("needs").
		Where(goqu.Ex{"id": id}).
		ScanStruct(&record)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch need: %w", err)
	}
	if !found {
		return nil, ErrNeedNotFound
	}

	need := record.TransformToNeed()
	return &need, nil
}

func (r *NeedsRepository) CreateNeed(departmentID, assetTypeID, quantity int, reasonDate time.Time, status string, note *string) (*models.Need, error) {
	var id int
	_, err := r.Repository.GoquDBWrapper.
		Insert("needs").
		Rows(goqu.Record{
			"department_id": departmentID,
			"asset_type_id": assetTypeID,
			"quantity":      quantity,
			"reason_date":   reasonDate,
			"status":        status,
			"note":          note,
		}).
		Returning("id").
		Executor().
		ScanVal(&id)
	if err != nil {
		if wrapped := custom_error.FromPqError(err, "failed to create need"); wrapped != err {
			return nil, wrapped
		}
		return nil, fmt.Errorf("failed to create need: %w", err)
	}

	return r.GetNeed(id)
}

func (r *NeedsRepository) UpdateNeed(id, departmentID, assetTypeID, quantity int, reasonDate time.Time, status string, note *string) (*models.Need, error) {
	result, err := r.Repository.GoquDBWrapper.
		Update("needs").
		Set(goqu.Record{
			"department_id": departmentID,
			"asset_type_id": assetTypeID,
			"quantity":      quantity,
			"reason_date":   reasonDate,
			"status":        status,
			"note":          note,
		}).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		if wrapped := custom_error.FromPqError(err, "failed to update need"); wrapped != err {
			return nil, wrapped
		}
		return nil, fmt.Errorf("failed to update need: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update need: %w", err)
	}
	if affected == 0 {
		return nil, ErrNeedNotFound
	}

	return r.GetNeed(id)
}

func (r *NeedsRepository) DeleteNeed(id int) error {
	result, err := r.Repository.GoquDBWrapper.
		Delete("needs").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to delete need: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete need: %w", err)
	}
	if affected == 0 {
		return ErrNeedNotFound
	}

	return nil
}

// UpdateStatuses sets the status on every listed need in one statement.
// All listed ids must exist, otherwise nothing is changed.
func (r *NeedsRepository) UpdateStatuses(ids []int, status string) error {
	ids = uniqueIDs(ids)

	return repository.WithTransaction(r.Repository.GoquDBWrapper, func(tx *goqu.TxDatabase) error {
		var count int
		_, err := tx.From("needs").
			Select(goqu.COUNT("id")).
			Where(goqu.Ex{"id": ids}).
			ScanVal(&count)
		if err != nil {
			return fmt.Errorf("failed to check needs: %w", err)
		}
		if count != len(ids) {
			return ErrNeedNotFound
		}

		_, err = tx.Update("needs").
			Set(goqu.Record{"status": status}).
			Where(goqu.Ex{"id": ids}).
			Executor().
			Exec()
		if err != nil {
			return fmt.Errorf("failed to update need statuses: %w", err)
		}

		return nil
	})
}

// DeleteNeeds removes the listed needs and reports how many rows went away.
func (r *NeedsRepository) DeleteNeeds(ids []int) (int, error) {
	result, err := r.Repository.GoquDBWrapper.
		Delete("needs").
		Where(goqu.Ex{"id": ids}).
		Executor().
		Exec()
	if err != nil {
		return 0, fmt.Errorf("failed to delete needs: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete needs: %w", err)
	}

	return int(affected), nil
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
