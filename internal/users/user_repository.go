package users

import (
	"errors"
	"fmt"

	"github.com/l4greenl/it-inventory/internal/repository"
	custom_error "github.com/l4greenl/it-inventory/pkg/errors"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type UserRepository interface {
	PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error)
	GetUsers() ([]models.User, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error) {
	var id int
	_, err := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":      req.Username,
			"password_hash": string(hashedPassword),
			"role":          req.Role,
		}).
		Returning("id").
		Executor().
		ScanVal(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return nil, custom_error.WrapDBError("failed to create user", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &models.User{ID: id, Username: req.Username, Role: req.Role}, nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User
	err := r.repository.GoquDBWrapper.
		Select("id", "username", "role").
		From("users").
		Order(goqu.I("id").Asc()).
		ScanStructs(&users)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, nil
}
