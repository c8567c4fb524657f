package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kódy Postgresu pro porušení unique / exclusion constraintu.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// IsExclusionConflict poznává odmítnutí zápisu constraintem na úrovni
// databáze (částečný unique index na potvrzených rezervacích). Dvojí
// rezervace stejného termínu tak skončí konfliktem i tehdy, když se
// dvě transakce minou s kontrolou překryvu.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	return false
}
