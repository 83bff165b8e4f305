package repositories

import (
	"database/sql"
	"strings"

	intdb "shiptix/internal/db"
	"shiptix/internal/domain"
)

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// expectAffected turns "0 rows matched" into NotFound. The DSN sets
// clientFoundRows so unchanged updates still count.
func expectAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}

func wrapWriteErr(resource string, err error) error {
	if intdb.IsDuplicate(err) {
		return domain.ConflictError{Resource: resource, Msg: "data sudah ada", Err: err}
	}
	return err
}
