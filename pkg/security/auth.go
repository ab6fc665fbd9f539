package security

import (
	"github.com/l4greenl/it-inventory/internal/repository"
	"github.com/l4greenl/it-inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// Session keys. The session itself travels in an http-only cookie; the
// client never sees more than {username, role}.
const (
	sessionKeyUserID   = "user_id"
	sessionKeyUsername = "username"
	sessionKeyRole     = "role"
)

func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "username", "password_hash", "role").
		From("users").
		Where(goqu.Ex{"username": username})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, bcrypt.ErrMismatchedHashAndPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

// SaveSession stores the authenticated user in the cookie session.
func SaveSession(c *gin.Context, user *models.User) error {
	sess := sessions.Default(c)
	sess.Set(sessionKeyUserID, user.ID)
	sess.Set(sessionKeyUsername, user.Username)
	sess.Set(sessionKeyRole, user.Role)
	return sess.Save()
}

func ClearSession(c *gin.Context) error {
	sess := sessions.Default(c)
	sess.Clear()
	return sess.Save()
}

// SessionUser returns the logged-in user's identity, or ok=false when the
// request carries no valid session.
func SessionUser(c *gin.Context) (username, role string, ok bool) {
	sess := sessions.Default(c)
	if sess.Get(sessionKeyUserID) == nil {
		return "", "", false
	}
	username, _ = sess.Get(sessionKeyUsername).(string)
	role, _ = sess.Get(sessionKeyRole).(string)
	return username, role, true
}
