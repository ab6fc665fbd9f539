package changes

import (
	"fmt"
	"time"

	"github.com/l4greenl/it-inventory/internal/repository"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type ChangeRepository struct {
	repository *repository.Repository
}

func NewChangeRepository(r *repository.Repository) *ChangeRepository {
	return &ChangeRepository{repository: r}
}

// ChangeFilter narrows the change log listing; zero values mean "no filter".
type ChangeFilter struct {
	AssetID   *int
	Action    string
	Field     string
	StartDate *time.Time
	EndDate   *time.Time
}

func (r *ChangeRepository) GetChanges(filter ChangeFilter) ([]models.Change, error) {
	query := r.repository.GoquDBWrapper.
		From("changes").
		Select(
			"id", "asset_id", "inventory_number", "asset_name",
			"action", "field", "old_value", "new_value", "changed_at",
		).
		Order(goqu.I("changed_at").Desc())

	if filter.AssetID != nil {
		query = query.Where(goqu.Ex{"asset_id": *filter.AssetID})
	}
	if filter.Action != "" {
		query = query.Where(goqu.Ex{"action": filter.Action})
	}
	if filter.Field != "" {
		query = query.Where(goqu.Ex{"field": filter.Field})
	}
	if filter.StartDate != nil {
		query = query.Where(goqu.I("changed_at").Gte(*filter.StartDate))
	}
	if filter.EndDate != nil {
		// End date is inclusive for the whole day.
		query = query.Where(goqu.I("changed_at").Lt(filter.EndDate.AddDate(0, 0, 1)))
	}

	var records []models.FlatChangeRecord
	if err := query.Executor().ScanStructs(&records); err != nil {
		return nil, fmt.Errorf("unable to fetch change log: %w", err)
	}

	changes := make([]models.Change, 0, len(records))
	for i := range records {
		changes = append(changes, records[i].TransformToChange())
	}

	return changes, nil
}

func (r *ChangeRepository) GetMoves() ([]models.Move, error) {
	query := r.repository.GoquDBWrapper.
		From("moves").
		Select(
			"id", "asset_id", "inventory_number", "asset_name",
			"from_value", "to_value", "move_type", "moved_at",
		).
		Order(goqu.I("moved_at").Desc())

	var records []models.FlatMoveRecord
	if err := query.Executor().ScanStructs(&records); err != nil {
		return nil, fmt.Errorf("unable to fetch move log: %w", err)
	}

	moves := make([]models.Move, 0, len(records))
	for i := range records {
		moves = append(moves, records[i].TransformToMove())
	}

	return moves, nil
}
