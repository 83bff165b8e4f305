package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "shiptix/internal/config"
	intdb "shiptix/internal/db"
	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	db := r.db()
	if db == nil {
		return models.User{}, domain.Unavailable("db tidak tersedia", nil)
	}
	if !intdb.HasTable(ctx, db, "users") {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}

	var u models.User
	err := db.QueryRowContext(ctx, `
		SELECT id, COALESCE(name,''), COALESCE(username,''), COALESCE(email,''),
		       COALESCE(password_hash,''), COALESCE(role,'')
		FROM users
		WHERE username=? OR email=?
		LIMIT 1`, strings.TrimSpace(username), strings.TrimSpace(username)).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}
