package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"shiptix/internal/utils"
)

// QueryRower is satisfied by *sql.DB and *sql.Tx.
type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

// HasTable reports whether table exists in the current schema. Lookup errors
// count as "missing" so callers can degrade to empty results.
func HasTable(ctx context.Context, q QueryRower, table string) bool {
	if q == nil {
		return false
	}
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		logLookupErr("HasTable", table, err)
		return false
	}
	return name.Valid && name.String != ""
}

func HasColumn(ctx context.Context, q QueryRower, table, column string) bool {
	if q == nil {
		return false
	}
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		  AND column_name = ?
		LIMIT 1
	`, table, column).Scan(&name)
	if err != nil {
		logLookupErr("HasColumn", table, err)
		return false
	}
	return name.Valid && name.String != ""
}

// bad conn dan no rows tidak perlu di-log (spam)
func logLookupErr(tag, table string, err error) {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, driver.ErrBadConn) {
		return
	}
	utils.L().Debug("schema lookup failed", zap.String("op", tag), zap.String("table", table), zap.Error(err))
}

// IsDuplicate reports a MySQL duplicate-key violation (1062).
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
