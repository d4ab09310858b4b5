package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bigtrip/internal/domain"
)

// User is an account allowed to obtain an editing token.
type User struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

// UserRepository reads accounts for the auth endpoint.
type UserRepository struct {
	DB *sqlx.DB
}

// GetByEmail looks an account up by email.
func (r UserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := r.DB.GetContext(ctx, &user,
		`SELECT id, name, email, password_hash FROM users WHERE email = ?`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	if err != nil {
		return User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}
