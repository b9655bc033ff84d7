package rdf

import (
	"fmt"
	"strings"
)

// SemanticType is the client-side column type a bound value is coerced to.
type SemanticType int

const (
	// TypeString is the conservative default for untyped values.
	TypeString SemanticType = iota
	// TypeBoolean accepts the lexical forms true/false and 1/0.
	TypeBoolean
	// TypeInteger covers the XSD integer family.
	TypeInteger
	// TypeFloat is a single-precision number.
	TypeFloat
	// TypeDouble covers xsd:double and xsd:decimal.
	TypeDouble
	// TypeDateTime covers xsd:date, xsd:dateTime and xsd:time.
	TypeDateTime
	// TypeURIReference marks a relation to another resource.
	TypeURIReference
)

var semanticTypeNames = map[SemanticType]string{
	TypeString:       "String",
	TypeBoolean:      "Boolean",
	TypeInteger:      "Integer",
	TypeFloat:        "Float",
	TypeDouble:       "Double",
	TypeDateTime:     "DateTime",
	TypeURIReference: "URIReference",
}

// String returns the canonical name of the semantic type.
func (s SemanticType) String() string {
	if name, ok := semanticTypeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SemanticType(%d)", int(s))
}

// ParseSemanticType resolves a canonical name back to a semantic type.
// It is used when reading per-variable type hints from the query manifest.
func ParseSemanticType(name string) (SemanticType, error) {
	for st, n := range semanticTypeNames {
		if n == name {
			return st, nil
		}
	}
	return TypeString, fmt.Errorf("unknown semantic type %q", name)
}

// localNameTypes is the fixed datatype-name to semantic-type table. XSD
// datatype IRIs are a closed, stable set, so this is the one hardcoded
// mapping in the engine. CIM primitive stereotypes (cim:String, cim:Float,
// ...) share local names with this table.
var localNameTypes = map[string]SemanticType{
	// XSD primitive and derived types.
	"boolean":            TypeBoolean,
	"integer":            TypeInteger,
	"int":                TypeInteger,
	"long":               TypeInteger,
	"short":              TypeInteger,
	"byte":               TypeInteger,
	"nonNegativeInteger": TypeInteger,
	"positiveInteger":    TypeInteger,
	"unsignedInt":        TypeInteger,
	"unsignedLong":       TypeInteger,
	"float":              TypeFloat,
	"double":             TypeDouble,
	"decimal":            TypeDouble,
	"string":             TypeString,
	"date":               TypeDateTime,
	"dateTime":           TypeDateTime,
	"time":               TypeDateTime,
	"duration":           TypeString,

	// CIM primitive stereotypes.
	"String":  TypeString,
	"Integer": TypeInteger,
	"Boolean": TypeBoolean,
	"Float":   TypeFloat,
	"Double":  TypeDouble,
	"Date":    TypeDateTime,
}

// ClassifyDatatype maps a datatype IRI to a semantic type. The second return
// value is false when the IRI is not in the known XSD/CIM set.
func ClassifyDatatype(datatypeIRI string) (SemanticType, bool) {
	st, ok := localNameTypes[DatatypeLocalName(datatypeIRI)]
	return st, ok
}

// DatatypeLocalName strips the namespace portion of a datatype IRI,
// splitting on '#' first and falling back to the last '/'.
func DatatypeLocalName(iri string) string {
	if i := strings.LastIndexByte(iri, '#'); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndexByte(iri, '/'); i >= 0 {
		return iri[i+1:]
	}
	return iri
}
