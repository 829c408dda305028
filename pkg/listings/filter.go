// Package listings implements search over the rental listings table:
// a typed filter model, a compiler from filters to parameterized SQL
// (including pgvector similarity ranking), and the search service that
// executes the compiled statement.
package listings

import "errors"

var (
	// ErrUnknownColumn indicates a filter referenced a column outside the
	// listings schema allow-list.
	ErrUnknownColumn = errors.New("unknown listings column")

	// ErrInvalidKind indicates a filter kind outside the recognized set.
	ErrInvalidKind = errors.New("invalid filter kind")

	// ErrInvalidOperator indicates a comparison symbol outside the allowed set.
	ErrInvalidOperator = errors.New("invalid comparison operator")
)

// Kind determines the SQL shape of a filter's comparison.
type Kind string

const (
	// KindText compiles to a pg_trgm fuzzy match, never plain equality.
	// Neighborhood and name input arrives as noisy natural language.
	KindText Kind = "text"

	// KindNumber compiles to a direct numeric comparison.
	KindNumber Kind = "number"

	// KindCurrency casts the column to a numeric monetary value before
	// comparing. Price columns are stored as formatted strings ("$120.00").
	KindCurrency Kind = "currency"

	// KindBoolean compiles to equality; any operator is ignored.
	KindBoolean Kind = "boolean"
)

// Filter is a single typed predicate over one listings column.
type Filter struct {
	// Value is always bound as a query parameter, never concatenated.
	Value any `json:"value"`

	// Kind selects the comparison shape.
	Kind Kind `json:"type"`

	// Operator is the comparison symbol for number and currency kinds.
	// When absent it defaults to "="; text and boolean kinds ignore it
	// entirely. This permissive handling is deliberate: the model
	// frequently omits the symbol for exact matches and sometimes
	// attaches one where it has no meaning.
	Operator string `json:"symbol,omitempty"`
}

// SearchRequest is a structured listings search.
type SearchRequest struct {
	// Filters maps column name to predicate. Columns must use exact
	// schema spelling ("neighbourhood", not "neighborhood").
	Filters map[string]Filter `json:"query_params"`

	// SimilarityText, when non-empty, is embedded and used to rank
	// results by vector distance. It is never nested under Filters.
	SimilarityText string `json:"embedding_text,omitempty"`
}

// operators is the full set of accepted comparison symbols.
var operators = map[string]bool{
	"=": true, "<": true, "<=": true, ">": true, ">=": true,
}

// columns is the allow-list of filterable schema columns, case-sensitive.
// Kept in sync with the airbnb_listings DDL.
var columns = map[string]bool{
	"listing_id":               true,
	"name":                     true,
	"description":              true,
	"neighborhood_overview":    true,
	"transit":                  true,
	"host_is_superhost":        true,
	"street":                   true,
	"neighbourhood":            true,
	"city":                     true,
	"state":                    true,
	"zipcode":                  true,
	"smart_location":           true,
	"country_code":             true,
	"country":                  true,
	"latitude":                 true,
	"longitude":                true,
	"property_type":            true,
	"room_type":                true,
	"accommodates":             true,
	"bathrooms":                true,
	"bedrooms":                 true,
	"beds":                     true,
	"bed_type":                 true,
	"amenities":                true,
	"square_feet":              true,
	"price":                    true,
	"weekly_price":             true,
	"monthly_price":            true,
	"security_deposit":         true,
	"cleaning_fee":             true,
	"extra_people":             true,
	"minimum_nights":           true,
	"maximum_nights":           true,
	"has_availability":         true,
	"availability_30":          true,
	"availability_60":          true,
	"availability_90":          true,
	"availability_365":         true,
	"review_scores_rating":     true,
	"is_business_travel_ready": true,
	"cancellation_policy":      true,
}
