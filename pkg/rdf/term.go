package rdf

import "fmt"

// TermKind discriminates the variants of a SPARQL binding value.
type TermKind int

const (
	// KindUnbound marks a variable with no binding in a result row.
	KindUnbound TermKind = iota
	// KindIRI is a resource reference.
	KindIRI
	// KindLiteral is a plain literal without a datatype annotation.
	KindLiteral
	// KindTypedLiteral is a literal with an explicit datatype IRI.
	KindTypedLiteral
)

// String returns the string representation of the term kind.
func (k TermKind) String() string {
	switch k {
	case KindUnbound:
		return "unbound"
	case KindIRI:
		return "uri"
	case KindLiteral:
		return "literal"
	case KindTypedLiteral:
		return "typed-literal"
	default:
		return fmt.Sprintf("TermKind(%d)", int(k))
	}
}

// Term is one SPARQL binding value. The zero value is the unbound term.
type Term struct {
	kind     TermKind
	value    string
	datatype string
}

// Unbound returns the term representing an absent binding.
func Unbound() Term {
	return Term{}
}

// IRI returns a resource-reference term.
func IRI(value string) Term {
	return Term{kind: KindIRI, value: value}
}

// Literal returns a plain literal term.
func Literal(lexical string) Term {
	return Term{kind: KindLiteral, value: lexical}
}

// TypedLiteral returns a literal term annotated with a datatype IRI.
func TypedLiteral(lexical, datatype string) Term {
	return Term{kind: KindTypedLiteral, value: lexical, datatype: datatype}
}

// Kind reports which variant this term is.
func (t Term) Kind() TermKind {
	return t.kind
}

// IsBound reports whether the term carries a value.
func (t Term) IsBound() bool {
	return t.kind != KindUnbound
}

// Value returns the lexical form for literals or the IRI string for
// resource references. It is empty for unbound terms.
func (t Term) Value() string {
	return t.value
}

// Datatype returns the datatype IRI for typed literals, empty otherwise.
func (t Term) Datatype() string {
	return t.datatype
}

// String renders the term for logs and error messages.
func (t Term) String() string {
	switch t.kind {
	case KindUnbound:
		return "<unbound>"
	case KindIRI:
		return "<" + t.value + ">"
	case KindTypedLiteral:
		return fmt.Sprintf("%q^^<%s>", t.value, t.datatype)
	default:
		return fmt.Sprintf("%q", t.value)
	}
}

// BindingRow maps projected variable names to terms. Variables that the
// store left unbound may be missing from the map entirely; both forms mean
// unbound.
type BindingRow map[string]Term

// Get returns the term bound to the variable, or the unbound term.
func (r BindingRow) Get(variable string) Term {
	if t, ok := r[variable]; ok {
		return t
	}
	return Unbound()
}

// ResultSet is the raw outcome of a SPARQL select query: the projected
// variables in projection order and the rows in server order. The engine
// never reorders rows.
type ResultSet struct {
	Variables []string
	Rows      []BindingRow
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	return len(rs.Rows)
}
