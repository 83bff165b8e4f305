package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "shiptix/internal/config"
	intdb "shiptix/internal/db"
	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

type ShipRepository struct {
	DB *sql.DB
}

func (r ShipRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const shipColumns = `id, COALESCE(name,''), COALESCE(capacity,0), COALESCE(operator_id,'')`

func (r ShipRepository) ListShips(ctx context.Context) ([]models.Ship, error) {
	db := r.db()
	if db == nil {
		return nil, domain.Unavailable("db tidak tersedia", nil)
	}
	if !intdb.HasTable(ctx, db, "ships") {
		return []models.Ship{}, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT `+shipColumns+` FROM ships ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ship{}
	for rows.Next() {
		var s models.Ship
		if err := rows.Scan(&s.ID, &s.Name, &s.Capacity, &s.OperatorID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r ShipRepository) GetShip(ctx context.Context, id string) (models.Ship, error) {
	db := r.db()
	if db == nil {
		return models.Ship{}, domain.Unavailable("db tidak tersedia", nil)
	}
	var s models.Ship
	err := db.QueryRowContext(ctx, `SELECT `+shipColumns+` FROM ships WHERE id=? LIMIT 1`, id).
		Scan(&s.ID, &s.Name, &s.Capacity, &s.OperatorID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ship{}, domain.NotFoundError{Resource: "ship", Err: err}
	}
	return s, err
}

func (r ShipRepository) CreateShip(ctx context.Context, s models.Ship) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	_, err := db.ExecContext(ctx, `INSERT INTO ships (id, name, capacity, operator_id) VALUES (?,?,?,?)`,
		s.ID, s.Name, s.Capacity, intdb.NullIfEmpty(s.OperatorID))
	return wrapWriteErr("ship", err)
}

func (r ShipRepository) UpdateShip(ctx context.Context, s models.Ship) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	res, err := db.ExecContext(ctx, `UPDATE ships SET name=?, capacity=?, operator_id=? WHERE id=?`,
		s.Name, s.Capacity, intdb.NullIfEmpty(s.OperatorID), s.ID)
	if err != nil {
		return wrapWriteErr("ship", err)
	}
	return expectAffected(res, "ship")
}

func (r ShipRepository) DeleteShip(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	res, err := db.ExecContext(ctx, `DELETE FROM ships WHERE id=?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "ship")
}
