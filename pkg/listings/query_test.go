package listings

import (
	"errors"
	"strings"
	"testing"

	"github.com/pgvector/pgvector-go"
)

func TestCompile(t *testing.T) {
	t.Run("combines fuzzy text and currency cast predicates", func(t *testing.T) {
		filters := map[string]Filter{
			"neighbourhood": {Value: "Mission Bay", Kind: KindText},
			"price":         {Value: 200, Kind: KindCurrency, Operator: "<="},
		}

		q, err := Compile(filters, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(q.SQL, "neighbourhood % $1") {
			t.Errorf("expected fuzzy predicate on neighbourhood, got: %s", q.SQL)
		}
		if !strings.Contains(q.SQL, "price::MONEY::NUMERIC <= $2") {
			t.Errorf("expected cast-compare predicate on price, got: %s", q.SQL)
		}
		if strings.Contains(q.SQL, "ORDER BY") {
			t.Errorf("expected no ORDER BY without a similarity vector, got: %s", q.SQL)
		}
		if !strings.HasSuffix(q.SQL, "LIMIT 5") {
			t.Errorf("expected LIMIT 5 suffix, got: %s", q.SQL)
		}
		if len(q.Params) != 2 {
			t.Fatalf("expected 2 params, got %d", len(q.Params))
		}
		if q.Params[0] != "Mission Bay" || q.Params[1] != 200 {
			t.Errorf("params out of order: %v", q.Params)
		}
	})

	t.Run("similarity vector with empty filters emits only ORDER BY", func(t *testing.T) {
		vec := pgvector.NewVector([]float32{0.1, 0.2, 0.3})

		q, err := Compile(nil, &vec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if strings.Contains(q.SQL, "WHERE") {
			t.Errorf("expected no WHERE clause, got: %s", q.SQL)
		}
		if !strings.Contains(q.SQL, "ORDER BY description_embedding <=> $1::vector") {
			t.Errorf("expected vector distance ordering, got: %s", q.SQL)
		}
		if !strings.Contains(q.SQL, "LIMIT 5") {
			t.Errorf("expected LIMIT 5, got: %s", q.SQL)
		}
		if len(q.Params) != 1 {
			t.Fatalf("expected 1 param, got %d", len(q.Params))
		}
		if _, ok := q.Params[0].(pgvector.Vector); !ok {
			t.Errorf("expected vector param, got %T", q.Params[0])
		}
	})

	t.Run("vector param is bound last after filter values", func(t *testing.T) {
		vec := pgvector.NewVector([]float32{1, 2})
		filters := map[string]Filter{
			"accommodates": {Value: 4, Kind: KindNumber, Operator: ">="},
			"price":        {Value: 150, Kind: KindCurrency, Operator: "<"},
		}

		q, err := Compile(filters, &vec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(q.Params) != 3 {
			t.Fatalf("expected 3 params, got %d", len(q.Params))
		}
		if _, ok := q.Params[2].(pgvector.Vector); !ok {
			t.Errorf("expected vector as last param, got %T", q.Params[2])
		}
		if !strings.Contains(q.SQL, "$3::vector") {
			t.Errorf("expected vector placeholder $3, got: %s", q.SQL)
		}
	})

	t.Run("parameter count matches placeholder count", func(t *testing.T) {
		filters := map[string]Filter{
			"bedrooms":          {Value: 2, Kind: KindNumber, Operator: "="},
			"host_is_superhost": {Value: true, Kind: KindBoolean},
			"city":              {Value: "San Francisco", Kind: KindText},
		}

		q, err := Compile(filters, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		placeholders := strings.Count(q.SQL, "$")
		if placeholders != len(q.Params) {
			t.Errorf("placeholder count %d != param count %d (%s)", placeholders, len(q.Params), q.SQL)
		}
	})

	t.Run("deterministic output for the same filter set", func(t *testing.T) {
		filters := map[string]Filter{
			"price":         {Value: 100, Kind: KindCurrency, Operator: "<="},
			"neighbourhood": {Value: "SoMa", Kind: KindText},
			"beds":          {Value: 1, Kind: KindNumber, Operator: ">="},
		}

		first, err := Compile(filters, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 10; i++ {
			again, err := Compile(filters, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if again.SQL != first.SQL {
				t.Fatalf("SQL changed between compilations:\n%s\n%s", first.SQL, again.SQL)
			}
		}
	})

	t.Run("empty filters and no vector emit bare capped select", func(t *testing.T) {
		q, err := Compile(nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "SELECT listing_id,name,description,price,neighbourhood FROM airbnb_listings LIMIT 5"
		if q.SQL != want {
			t.Errorf("expected %q, got %q", want, q.SQL)
		}
		if len(q.Params) != 0 {
			t.Errorf("expected no params, got %v", q.Params)
		}
	})

	t.Run("missing operator defaults to equality for number and currency", func(t *testing.T) {
		filters := map[string]Filter{
			"bedrooms": {Value: 3, Kind: KindNumber},
		}
		q, err := Compile(filters, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(q.SQL, "bedrooms = $1") {
			t.Errorf("expected defaulted equality, got: %s", q.SQL)
		}
	})

	t.Run("boolean ignores operator", func(t *testing.T) {
		filters := map[string]Filter{
			"has_availability": {Value: true, Kind: KindBoolean, Operator: ">="},
		}
		q, err := Compile(filters, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(q.SQL, "has_availability = $1") {
			t.Errorf("expected equality for boolean, got: %s", q.SQL)
		}
	})

	t.Run("text never compiles to plain equality", func(t *testing.T) {
		filters := map[string]Filter{
			"name": {Value: "Sunny Loft", Kind: KindText},
		}
		q, err := Compile(filters, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(q.SQL, "name = ") {
			t.Errorf("text filter must not use equality: %s", q.SQL)
		}
	})

	t.Run("rejects columns outside the allow-list", func(t *testing.T) {
		filters := map[string]Filter{
			"neighborhood": {Value: "SoMa", Kind: KindText}, // American spelling
		}
		_, err := Compile(filters, nil)
		if !errors.Is(err, ErrUnknownColumn) {
			t.Errorf("expected ErrUnknownColumn, got: %v", err)
		}
	})

	t.Run("rejects unrecognized kinds", func(t *testing.T) {
		filters := map[string]Filter{
			"price": {Value: 10, Kind: Kind("decimal")},
		}
		_, err := Compile(filters, nil)
		if !errors.Is(err, ErrInvalidKind) {
			t.Errorf("expected ErrInvalidKind, got: %v", err)
		}
	})

	t.Run("rejects operators outside the allowed symbol set", func(t *testing.T) {
		for _, kind := range []Kind{KindNumber, KindCurrency} {
			filters := map[string]Filter{
				"price": {Value: 10, Kind: kind, Operator: "<>"},
			}
			_, err := Compile(filters, nil)
			if !errors.Is(err, ErrInvalidOperator) {
				t.Errorf("kind %s: expected ErrInvalidOperator, got: %v", kind, err)
			}
		}
	})

	t.Run("stray symbol on non-comparing kinds is ignored", func(t *testing.T) {
		filters := map[string]Filter{
			"neighbourhood":    {Value: "Mission Bay", Kind: KindText, Operator: "~"},
			"has_availability": {Value: true, Kind: KindBoolean, Operator: "~"},
		}
		q, err := Compile(filters, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(q.SQL, "neighbourhood % $2") {
			t.Errorf("expected fuzzy predicate despite stray symbol, got: %s", q.SQL)
		}
		if !strings.Contains(q.SQL, "has_availability = $1") {
			t.Errorf("expected equality despite stray symbol, got: %s", q.SQL)
		}
	})
}
