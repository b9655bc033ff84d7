package template

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func testEngine(buf *bytes.Buffer) *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(buf, nil)))
}

func TestExpand(t *testing.T) {
	tmpl := Template{
		Name: "loads",
		Text: "PREFIX cim: <${cim}>\nSELECT ?mrid WHERE { FILTER regex(?area, '${region}') }",
	}
	params := Parameters{"region": "NO1"}
	prefixes := map[string]string{"cim": "http://iec.ch/TC57/2013/CIM-schema-cim16#"}

	got, err := testEngine(&bytes.Buffer{}).Expand(tmpl, params, prefixes)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !strings.Contains(got, "<http://iec.ch/TC57/2013/CIM-schema-cim16#>") {
		t.Errorf("prefix not substituted: %s", got)
	}
	if !strings.Contains(got, "regex(?area, 'NO1')") {
		t.Errorf("region not substituted: %s", got)
	}
}

func TestExpandRegionDefault(t *testing.T) {
	tmpl := Template{
		Name: "synchronous_machines",
		Text: "FILTER regex(?area, '${region}')",
	}
	var logBuf bytes.Buffer

	got, err := testEngine(&logBuf).Expand(tmpl, nil, nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got != "FILTER regex(?area, '.*')" {
		t.Errorf("absent region must expand to the wildcard, got %q", got)
	}
	if !bytes.Contains(logBuf.Bytes(), []byte("matching all regions")) {
		t.Error("region default must be logged as an observable event")
	}
}

func TestExpandMissingPlaceholder(t *testing.T) {
	tmpl := Template{
		Name: "ac_lines",
		Text: "?lim cim:IdentifiedObject.name '${rate}@20'",
	}

	_, err := testEngine(&bytes.Buffer{}).Expand(tmpl, nil, nil)
	var tmplErr *TemplateError
	if !errors.As(err, &tmplErr) {
		t.Fatalf("want TemplateError, got %v", err)
	}
	if tmplErr.Placeholder != "rate" {
		t.Errorf("unexpected placeholder in error: %q", tmplErr.Placeholder)
	}
}

func TestExpandAllSuppliedNeverFails(t *testing.T) {
	tmpl := Template{
		Name:     "exchange",
		Text:     "${cim} ${region} ${rate}",
		Required: []string{"rate"},
	}
	params := Parameters{"region": "NO.*", "rate": "Normal"}
	prefixes := map[string]string{"cim": "c"}

	if _, err := testEngine(&bytes.Buffer{}).Expand(tmpl, params, prefixes); err != nil {
		t.Fatalf("fully-parameterized expand must not fail: %v", err)
	}

	// Removing the one required parameter makes it fail.
	delete(params, "rate")
	if _, err := testEngine(&bytes.Buffer{}).Expand(tmpl, params, prefixes); err == nil {
		t.Fatal("expand without required parameter must fail")
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("${cim} ${region} ${cim} ${rate}")
	want := []string{"cim", "rate", "region"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Placeholders = %v, want %v", got, want)
	}
}

func TestMissingRequired(t *testing.T) {
	tmpl := Template{Name: "ac_lines", Required: []string{"rate"}}
	if got := MissingRequired(tmpl, Parameters{}); !reflect.DeepEqual(got, []string{"rate"}) {
		t.Errorf("MissingRequired = %v", got)
	}
	if got := MissingRequired(tmpl, Parameters{"rate": "Normal"}); got != nil {
		t.Errorf("MissingRequired = %v, want nil", got)
	}
}

func TestPrefixHeader(t *testing.T) {
	got := PrefixHeader(map[string]string{
		"xsd": "http://www.w3.org/2001/XMLSchema#",
		"cim": "http://iec.ch/TC57/2013/CIM-schema-cim16#",
	})
	want := "PREFIX cim: <http://iec.ch/TC57/2013/CIM-schema-cim16#>\n" +
		"PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>\n"
	if got != want {
		t.Errorf("PrefixHeader = %q, want %q", got, want)
	}
}

func TestFederate(t *testing.T) {
	query := strings.Join([]string{
		"SELECT ?mrid ?p WHERE {",
		"  #!equipment-begin",
		"  ?term cim:Terminal.ConductingEquipment ?eq .",
		"  #!equipment-end",
		"  ?inj cim:SvInjection.pInjection ?p .",
		"}",
	}, "\n")

	got, err := Federate(query, "repository:abot_20250101")
	if err != nil {
		t.Fatalf("Federate: %v", err)
	}
	if !strings.Contains(got, "SERVICE <repository:abot_20250101> {") {
		t.Errorf("equipment block not wrapped:\n%s", got)
	}
	if strings.Contains(got, EquipmentBegin) || strings.Contains(got, EquipmentEnd) {
		t.Errorf("sentinels must not survive federation:\n%s", got)
	}
	if !strings.Contains(got, "?inj cim:SvInjection.pInjection ?p .") {
		t.Errorf("state-profile pattern must stay unwrapped:\n%s", got)
	}
}

func TestFederateWithoutRefStripsSentinels(t *testing.T) {
	query := "a\n#!equipment-begin\nb\n#!equipment-end\nc"
	got, err := Federate(query, "")
	if err != nil {
		t.Fatalf("Federate: %v", err)
	}
	if got != "a\nb\nc" {
		t.Errorf("Federate = %q", got)
	}
}

func TestFederatePassThrough(t *testing.T) {
	query := "SELECT * WHERE { ?s ?p ?o }"
	got, err := Federate(query, "anything")
	if err != nil || got != query {
		t.Errorf("Federate = %q, %v", got, err)
	}
}

func TestFederateUnbalanced(t *testing.T) {
	for _, query := range []string{
		"#!equipment-begin\nx",
		"x\n#!equipment-end",
		"#!equipment-begin\n#!equipment-begin\nx\n#!equipment-end",
	} {
		if _, err := Federate(query, "ref"); err == nil {
			t.Errorf("unbalanced sentinels must fail: %q", query)
		}
	}
}
