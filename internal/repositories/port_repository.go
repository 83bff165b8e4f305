package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "shiptix/internal/config"
	intdb "shiptix/internal/db"
	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

type PortRepository struct {
	DB *sql.DB
}

func (r PortRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PortRepository) columns(ctx context.Context, db *sql.DB) string {
	tz := "''"
	if intdb.HasColumn(ctx, db, "ports", "timezone") {
		tz = "COALESCE(timezone,'')"
	}
	return "id, COALESCE(name,''), COALESCE(city,''), COALESCE(code,''), " + tz
}

// ListPorts returns every port ordered by city then name.
func (r PortRepository) ListPorts(ctx context.Context) ([]models.Port, error) {
	db := r.db()
	if db == nil {
		return nil, domain.Unavailable("db tidak tersedia", nil)
	}
	if !intdb.HasTable(ctx, db, "ports") {
		return []models.Port{}, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT `+r.columns(ctx, db)+` FROM ports ORDER BY city ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Port{}
	for rows.Next() {
		var p models.Port
		if err := rows.Scan(&p.ID, &p.Name, &p.City, &p.Code, &p.Timezone); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PortRepository) GetPort(ctx context.Context, id string) (models.Port, error) {
	db := r.db()
	if db == nil {
		return models.Port{}, domain.Unavailable("db tidak tersedia", nil)
	}
	if !intdb.HasTable(ctx, db, "ports") {
		return models.Port{}, domain.NotFoundError{Resource: "port"}
	}

	var p models.Port
	err := db.QueryRowContext(ctx, `SELECT `+r.columns(ctx, db)+` FROM ports WHERE id=? LIMIT 1`, id).
		Scan(&p.ID, &p.Name, &p.City, &p.Code, &p.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Port{}, domain.NotFoundError{Resource: "port", Err: err}
	}
	return p, err
}

func (r PortRepository) CreatePort(ctx context.Context, p models.Port) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	cols := []string{"id", "name", "city", "code"}
	args := []any{p.ID, p.Name, p.City, intdb.NullIfEmpty(p.Code)}
	if intdb.HasColumn(ctx, db, "ports", "timezone") {
		cols = append(cols, "timezone")
		args = append(args, intdb.NullIfEmpty(p.Timezone))
	}
	query := fmt.Sprintf(`INSERT INTO ports (%s) VALUES (%s)`, strings.Join(cols, ","), placeholders(len(cols)))
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return wrapWriteErr("port", err)
	}
	return nil
}

func (r PortRepository) UpdatePort(ctx context.Context, p models.Port) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	sets := []string{"name=?", "city=?", "code=?"}
	args := []any{p.Name, p.City, intdb.NullIfEmpty(p.Code)}
	if intdb.HasColumn(ctx, db, "ports", "timezone") {
		sets = append(sets, "timezone=?")
		args = append(args, intdb.NullIfEmpty(p.Timezone))
	}
	args = append(args, p.ID)
	res, err := db.ExecContext(ctx, `UPDATE ports SET `+strings.Join(sets, ",")+` WHERE id=?`, args...)
	if err != nil {
		return wrapWriteErr("port", err)
	}
	return expectAffected(res, "port")
}

func (r PortRepository) DeletePort(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	res, err := db.ExecContext(ctx, `DELETE FROM ports WHERE id=?`, id)
	if err != nil {
		return wrapWriteErr("port", err)
	}
	return expectAffected(res, "port")
}
