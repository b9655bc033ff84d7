package prefix

import (
	"errors"
	"testing"
)

const cimNS = "http://iec.ch/TC57/2013/CIM-schema-cim16#"

func TestRegisterIdempotent(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("cim", cimNS); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register("cim", cimNS); err != nil {
		t.Fatalf("identical re-register should be a no-op, got %v", err)
	}
}

func TestRegisterConflict(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("cim", cimNS); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := r.Register("cim", "http://iec.ch/TC57/2010/CIM-schema-cim15#")
	if err == nil {
		t.Fatal("conflicting register must fail")
	}
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("want ConflictError, got %T", err)
	}
	if conflict.Prefix != "cim" || conflict.Existing != cimNS {
		t.Errorf("unexpected conflict details: %+v", conflict)
	}

	// The original registration survives.
	iri, err := r.Resolve("cim")
	if err != nil || iri != cimNS {
		t.Errorf("Resolve after conflict = %q, %v", iri, err)
	}
}

func TestResolveUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("xsd")
	var unknown *UnknownPrefixError
	if !errors.As(err, &unknown) {
		t.Fatalf("want UnknownPrefixError, got %v", err)
	}
	if unknown.Prefix != "xsd" {
		t.Errorf("unexpected prefix in error: %q", unknown.Prefix)
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	r := FromMap(map[string]string{"cim": cimNS})
	snap := r.All()
	snap["cim"] = "mutated"

	iri, err := r.Resolve("cim")
	if err != nil || iri != cimNS {
		t.Errorf("registry mutated through snapshot: %q, %v", iri, err)
	}
}

func TestPrefixesSorted(t *testing.T) {
	r := FromMap(map[string]string{
		"xsd": "http://www.w3.org/2001/XMLSchema#",
		"cim": cimNS,
		"SN":  "http://www.statnett.no/CIM-schema-cim15-extension#",
	})
	got := r.Prefixes()
	want := []string{"SN", "cim", "xsd"}
	if len(got) != len(want) {
		t.Fatalf("Prefixes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Prefixes() = %v, want %v", got, want)
		}
	}
}
