package table

import (
	"fmt"

	"github.com/statnett/cimsparql/pkg/rdf"
)

// CoercionError reports a bound value whose lexical form does not match the
// column's declared semantic type. It is distinct from an absent value,
// which converts to an explicit null. Callers may choose to downgrade a
// coercion failure to null; the converter itself never does.
type CoercionError struct {
	Column  string
	Row     int
	Lexical string
	Want    rdf.SemanticType
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("column %q row %d: cannot coerce %q to %s", e.Column, e.Row, e.Lexical, e.Want)
}

// Is implements errors.Is support for CoercionError.
func (e *CoercionError) Is(target error) bool {
	_, ok := target.(*CoercionError)
	return ok
}

// ColumnTypeConflictError reports an irreconcilable mix of term kinds in one
// column, beyond the supported URIReference/literal downgrade to String.
type ColumnTypeConflictError struct {
	Column string
	Row    int
	Want   rdf.SemanticType
	Got    rdf.TermKind
}

func (e *ColumnTypeConflictError) Error() string {
	return fmt.Sprintf("column %q row %d: %s term in a %s column", e.Column, e.Row, e.Got, e.Want)
}

// Is implements errors.Is support for ColumnTypeConflictError.
func (e *ColumnTypeConflictError) Is(target error) bool {
	_, ok := target.(*ColumnTypeConflictError)
	return ok
}
