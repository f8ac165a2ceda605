package persistence

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// idBatchSize bounds the number of bind parameters in a single IN clause.
const idBatchSize = 500

// statementBuilder picks the placeholder style of the connected driver.
func statementBuilder(db *sqlx.DB) sq.StatementBuilderType {
	switch db.DriverName() {
	case "pgx", "postgres":
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	default:
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
}
