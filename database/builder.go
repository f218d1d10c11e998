package database

import sq "github.com/Masterminds/squirrel"

// StatementBuilder returns a squirrel builder using the placeholder style of dialect.
func StatementBuilder(dialect string) sq.StatementBuilderType {
	if dialect == DialectPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}
