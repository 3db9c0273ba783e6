// Package query turns user-supplied filter expressions and sort keys into
// view predicates and comparators.
//
// Filters are CEL expressions evaluated against the fields of one record,
// for example:
//
//	"friend" in tags && name.startsWith("A")
//	premium > 100.0 && expiry < timestamp("2030-01-01T00:00:00Z")
package query

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/mesh-intelligence/insurebook/internal/view"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

// Field names used in ValidationErrors raised by this package.
const (
	FieldWhere = "where"
	FieldSort  = "sort"
)

// Compile compiles expr against kind's variables. The expression must yield a
// bool. A record for which evaluation fails at runtime is not selected.
// An empty expr selects every record and returns a nil predicate.
func Compile[T any](kind Kind[T], expr string) (view.Predicate[T], error) {
	if strings.TrimSpace(expr) == "" {
		return nil, nil
	}
	env, err := cel.NewEnv(kind.decls...)
	if err != nil {
		return nil, fmt.Errorf("creating %s environment: %w", kind.entity, err)
	}
	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, types.NewValidationError(kind.entity, FieldWhere, iss.Err().Error())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, types.NewValidationError(kind.entity, FieldWhere,
			fmt.Sprintf("filter must be a boolean expression, got %s", ast.OutputType()))
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, types.NewValidationError(kind.entity, FieldWhere, err.Error())
	}
	return func(rec T) bool {
		out, _, err := prg.Eval(kind.vars(rec))
		if err != nil {
			return false
		}
		b, ok := out.Value().(bool)
		return ok && b
	}, nil
}

// Comparator returns the comparator sorting by field. A leading "-" reverses
// the order. An empty field keeps insertion order and returns nil.
func Comparator[T any](kind Kind[T], field string) (view.Comparator[T], error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, nil
	}
	desc := strings.HasPrefix(field, "-")
	cmp, ok := kind.sorts[strings.TrimPrefix(field, "-")]
	if !ok {
		return nil, types.NewValidationError(kind.entity, FieldSort,
			fmt.Sprintf("cannot sort by %q; choose one of %s", field, strings.Join(kind.SortFields(), ", ")))
	}
	if desc {
		return func(a, b T) int { return cmp(b, a) }, nil
	}
	return cmp, nil
}
