package listings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// resultCap is the hard upper bound on returned rows, not configurable
// per request.
const resultCap = 5

// selectColumns is the fixed projection returned by every search.
const selectColumns = "listing_id,name,description,price,neighbourhood"

// CompiledQuery is a SQL statement with its ordered bind parameters.
// Params length and order match placeholder occurrence order exactly.
// A compiled query is executed once and discarded; values vary per call.
type CompiledQuery struct {
	SQL    string
	Params []any
}

// Compile turns a filter set and an optional similarity vector into a
// parameterized SELECT over airbnb_listings.
//
// Filters are iterated in sorted column order so the same request always
// compiles to the same SQL. Predicates join with AND; an empty filter set
// emits no WHERE clause. A non-nil vector appends an ORDER BY on
// embedding distance (ascending, closest first) regardless of whether a
// WHERE clause exists. The vector parameter is always bound last.
func Compile(filters map[string]Filter, vec *pgvector.Vector) (CompiledQuery, error) {
	var (
		sb     strings.Builder
		params []any
	)
	sb.WriteString("SELECT " + selectColumns + " FROM airbnb_listings")

	cols := make([]string, 0, len(filters))
	for col := range filters {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	conditions := make([]string, 0, len(cols))
	for _, col := range cols {
		f := filters[col]
		if !columns[col] {
			return CompiledQuery{}, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}

		n := len(params) + 1
		switch f.Kind {
		case KindText:
			// pg_trgm similarity match; exact equality would miss
			// near-spellings like "mission bay". Any symbol is ignored.
			conditions = append(conditions, fmt.Sprintf("%s %% $%d", col, n))
		case KindNumber:
			op, err := comparisonOp(f.Operator)
			if err != nil {
				return CompiledQuery{}, err
			}
			conditions = append(conditions, fmt.Sprintf("%s %s $%d", col, op, n))
		case KindCurrency:
			op, err := comparisonOp(f.Operator)
			if err != nil {
				return CompiledQuery{}, err
			}
			conditions = append(conditions, fmt.Sprintf("%s::MONEY::NUMERIC %s $%d", col, op, n))
		case KindBoolean:
			conditions = append(conditions, fmt.Sprintf("%s = $%d", col, n))
		default:
			return CompiledQuery{}, fmt.Errorf("%w: %q", ErrInvalidKind, f.Kind)
		}
		params = append(params, f.Value)
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	if vec != nil {
		sb.WriteString(fmt.Sprintf(" ORDER BY description_embedding <=> $%d::vector", len(params)+1))
		params = append(params, *vec)
	}

	sb.WriteString(fmt.Sprintf(" LIMIT %d", resultCap))

	return CompiledQuery{SQL: sb.String(), Params: params}, nil
}

// comparisonOp resolves the comparison symbol for kinds that compare.
// An absent symbol defaults to equality. Kinds that never compare
// (text, boolean) skip this entirely, so a stray symbol on them is
// ignored rather than rejected.
func comparisonOp(symbol string) (string, error) {
	if symbol == "" {
		return "=", nil
	}
	if !operators[symbol] {
		return "", fmt.Errorf("%w: %q", ErrInvalidOperator, symbol)
	}
	return symbol, nil
}
