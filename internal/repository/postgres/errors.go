package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Коды SQLSTATE, которые транслируются в доменные ошибки
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// pgError возвращает *pgconn.PgError с указанным кодом, если err его содержит
func pgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

func isUniqueViolation(err error) bool {
	_, ok := pgError(err, codeUniqueViolation)
	return ok
}

// foreignKeyConstraint возвращает имя нарушенного внешнего ключа
func foreignKeyConstraint(err error) (string, bool) {
	pgErr, ok := pgError(err, codeForeignKeyViolation)
	if !ok {
		return "", false
	}
	return pgErr.ConstraintName, true
}
