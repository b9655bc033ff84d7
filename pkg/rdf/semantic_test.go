package rdf

import "testing"

func TestClassifyDatatype(t *testing.T) {
	tests := []struct {
		iri  string
		want SemanticType
		ok   bool
	}{
		{"http://www.w3.org/2001/XMLSchema#boolean", TypeBoolean, true},
		{"http://www.w3.org/2001/XMLSchema#integer", TypeInteger, true},
		{"http://www.w3.org/2001/XMLSchema#nonNegativeInteger", TypeInteger, true},
		{"http://www.w3.org/2001/XMLSchema#float", TypeFloat, true},
		{"http://www.w3.org/2001/XMLSchema#double", TypeDouble, true},
		{"http://www.w3.org/2001/XMLSchema#decimal", TypeDouble, true},
		{"http://www.w3.org/2001/XMLSchema#string", TypeString, true},
		{"http://www.w3.org/2001/XMLSchema#dateTime", TypeDateTime, true},
		{"http://iec.ch/TC57/2013/CIM-schema-cim16#Float", TypeFloat, true},
		{"http://iec.ch/TC57/2013/CIM-schema-cim16#String", TypeString, true},
		{"http://iec.ch/TC57/2013/CIM-schema-cim16#Voltage", TypeString, false},
		{"", TypeString, false},
	}

	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			got, ok := ClassifyDatatype(tt.iri)
			if ok != tt.ok {
				t.Fatalf("ClassifyDatatype(%q) ok = %v, want %v", tt.iri, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ClassifyDatatype(%q) = %v, want %v", tt.iri, got, tt.want)
			}
		})
	}
}

func TestDatatypeLocalName(t *testing.T) {
	tests := []struct {
		iri  string
		want string
	}{
		{"http://www.w3.org/2001/XMLSchema#double", "double"},
		{"http://example.com/types/double", "double"},
		{"double", "double"},
	}

	for _, tt := range tests {
		if got := DatatypeLocalName(tt.iri); got != tt.want {
			t.Errorf("DatatypeLocalName(%q) = %q, want %q", tt.iri, got, tt.want)
		}
	}
}

func TestParseSemanticType(t *testing.T) {
	for st, name := range map[SemanticType]string{
		TypeBoolean:      "Boolean",
		TypeDouble:       "Double",
		TypeURIReference: "URIReference",
	} {
		got, err := ParseSemanticType(name)
		if err != nil {
			t.Fatalf("ParseSemanticType(%q): %v", name, err)
		}
		if got != st {
			t.Errorf("ParseSemanticType(%q) = %v, want %v", name, got, st)
		}
	}

	if _, err := ParseSemanticType("Complex"); err == nil {
		t.Error("ParseSemanticType should reject unknown names")
	}
}

func TestTermAccessors(t *testing.T) {
	typed := TypedLiteral("42", "http://www.w3.org/2001/XMLSchema#integer")
	if typed.Kind() != KindTypedLiteral || typed.Value() != "42" {
		t.Errorf("unexpected typed literal: %v", typed)
	}

	var zero Term
	if zero.IsBound() {
		t.Error("zero Term must be unbound")
	}

	row := BindingRow{"mrid": IRI("urn:uuid:abc")}
	if !row.Get("mrid").IsBound() {
		t.Error("bound variable reported unbound")
	}
	if row.Get("missing").IsBound() {
		t.Error("missing variable reported bound")
	}
}
