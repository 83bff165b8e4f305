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

type OperatorRepository struct {
	DB *sql.DB
}

func (r OperatorRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const operatorColumns = `id, COALESCE(name,''), COALESCE(phone,''), COALESCE(email,'')`

func (r OperatorRepository) ListOperators(ctx context.Context) ([]models.Operator, error) {
	db := r.db()
	if db == nil {
		return nil, domain.Unavailable("db tidak tersedia", nil)
	}
	if !intdb.HasTable(ctx, db, "operators") {
		return []models.Operator{}, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT `+operatorColumns+` FROM operators ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Operator{}
	for rows.Next() {
		var o models.Operator
		if err := rows.Scan(&o.ID, &o.Name, &o.Phone, &o.Email); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r OperatorRepository) GetOperator(ctx context.Context, id string) (models.Operator, error) {
	db := r.db()
	if db == nil {
		return models.Operator{}, domain.Unavailable("db tidak tersedia", nil)
	}
	var o models.Operator
	err := db.QueryRowContext(ctx, `SELECT `+operatorColumns+` FROM operators WHERE id=? LIMIT 1`, id).
		Scan(&o.ID, &o.Name, &o.Phone, &o.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Operator{}, domain.NotFoundError{Resource: "operator", Err: err}
	}
	return o, err
}

func (r OperatorRepository) CreateOperator(ctx context.Context, o models.Operator) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	_, err := db.ExecContext(ctx, `INSERT INTO operators (id, name, phone, email) VALUES (?,?,?,?)`,
		o.ID, o.Name, intdb.NullIfEmpty(o.Phone), intdb.NullIfEmpty(o.Email))
	return wrapWriteErr("operator", err)
}

func (r OperatorRepository) UpdateOperator(ctx context.Context, o models.Operator) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	res, err := db.ExecContext(ctx, `UPDATE operators SET name=?, phone=?, email=? WHERE id=?`,
		o.Name, intdb.NullIfEmpty(o.Phone), intdb.NullIfEmpty(o.Email), o.ID)
	if err != nil {
		return wrapWriteErr("operator", err)
	}
	return expectAffected(res, "operator")
}

func (r OperatorRepository) DeleteOperator(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.Unavailable("db tidak tersedia", nil)
	}
	res, err := db.ExecContext(ctx, `DELETE FROM operators WHERE id=?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res, "operator")
}
