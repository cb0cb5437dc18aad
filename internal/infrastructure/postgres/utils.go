package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return hasCode(err, "23505")
}

// isFKViolation verifica si un error es una violación de clave foránea (23503).
func isFKViolation(err error) bool {
	return hasCode(err, "23503")
}

// isCheckViolation 23514, p. ej. stock >= 0.
func isCheckViolation(err error) bool {
	return hasCode(err, "23514")
}

// isOutOfRange 22003: valor numérico fuera del rango de la columna.
func isOutOfRange(err error) bool {
	return hasCode(err, "22003")
}

func hasCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
