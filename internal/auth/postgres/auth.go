package postgres

import (
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/mwicaksana/construction-management/internal/auth"
	"github.com/mwicaksana/construction-management/internal/permissions"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentials(email string) (string, int64, error) {
	var passwordHash string
	var userID int64

	row := r.db.Raw(
		`SELECT id, password_hash FROM users WHERE email = ? AND is_active = true`,
		email,
	).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", 0, errors.New("user not found")
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

// GetUserWithCapabilities loads the user with its persisted capability
// bitmask. The mask is a single integer column; resolution to named
// permissions happens in the permissions package, not in SQL.
func (r *Repository) GetUserWithCapabilities(userID int64) (*auth.User, error) {
	var user auth.User
	var capabilitySet uint64

	row := r.db.Raw(
		`SELECT id, email, name, is_active, capability_set FROM users WHERE id = ?`,
		userID,
	).Row()
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.IsActive, &capabilitySet); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	user.CapabilitySet = permissions.CapabilitySet(capabilitySet)
	return &user, nil
}
