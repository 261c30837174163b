// Package search builds the case-insensitive substring filters used by the
// list endpoints. User input only ever reaches the database as a bind
// parameter; LIKE wildcards in the input are escaped.
package search

import (
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
)

const dialectPostgres = "postgres"

// ErrBuildingQueryFailed is returned when goqu cannot render a statement
var ErrBuildingQueryFailed = errors.New("building query failed")

// Dialect is the shared postgres dialect for all list queries
var Dialect = goqu.Dialect(dialectPostgres)

// Field is one searchable column. Non-text columns (dates, integers, uuids)
// set AsText so they are cast before the ILIKE comparison.
type Field struct {
	Column string
	AsText bool
}

// Text is a text column
func Text(column string) Field { return Field{Column: column} }

// Cast is a column compared through CAST(... AS TEXT)
func Cast(column string) Field { return Field{Column: column, AsText: true} }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern wraps term in % after escaping wildcard characters
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// AnyFieldContains returns an OR expression matching term as a substring of
// any field, or nil when term is blank.
func AnyFieldContains(term string, fields ...Field) exp.Expression {
	term = strings.TrimSpace(term)
	if term == "" || len(fields) == 0 {
		return nil
	}

	pattern := LikePattern(term)
	expressions := make([]exp.Expression, 0, len(fields))

	for _, f := range fields {
		if f.AsText {
			expressions = append(expressions, goqu.L("CAST(? AS TEXT)", goqu.I(f.Column)).ILike(pattern))
			continue
		}
		expressions = append(expressions, goqu.I(f.Column).ILike(pattern))
	}

	return goqu.Or(expressions...)
}

// ToSQL renders ds with numbered placeholders ($1, $2, ...)
func ToSQL(ds *goqu.SelectDataset) (string, []interface{}, error) {
	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return "", nil, errors.Join(ErrBuildingQueryFailed, err)
	}
	return query, args, nil
}
