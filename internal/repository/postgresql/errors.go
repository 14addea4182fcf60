package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

// isForeignKeyViolation reports whether err came from a row referencing a
// missing parent, which for every table here means an unknown employee.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}
