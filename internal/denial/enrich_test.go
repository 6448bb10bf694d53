package denial

import (
	"strings"
	"testing"

	"claimlens/internal/extract"
)

func TestMatchExact(t *testing.T) {
	e := Match("CO-97")
	if e == nil || e.Code != "CO-97" {
		t.Fatalf("Match(CO-97) = %+v", e)
	}
	if e.Reason != "Included in Other Service" || e.SuccessProbability != 68 {
		t.Fatalf("entry content wrong: %+v", e)
	}
}

func TestMatchIgnoresCaseAndWhitespace(t *testing.T) {
	for _, code := range []string{"co-16", " CO-16 ", "co - 16", "Co-16\n"} {
		e := Match(code)
		if e == nil || e.Code != "CO-16" {
			t.Fatalf("Match(%q) = %+v", code, e)
		}
	}
}

func TestMatchUnknownSubstitutesDefault(t *testing.T) {
	e := Match("XY-999")
	if e == nil {
		t.Fatal("unknown code must substitute the default entry")
	}
	if e.Code != "CO-50" {
		t.Fatalf("default entry code = %q, want CO-50", e.Code)
	}
}

func TestMatchEmptyMeansProcessed(t *testing.T) {
	if e := Match(""); e != nil {
		t.Fatalf("Match(empty) = %+v, want nil", e)
	}
	if e := Match("   "); e != nil {
		t.Fatalf("Match(blank) = %+v, want nil", e)
	}
}

func TestMatchReturnsCopy(t *testing.T) {
	a := Match("CO-50")
	a.Reason = "mutated"
	b := Match("CO-50")
	if b.Reason != "Not Medically Necessary" {
		t.Fatal("knowledge base entry was mutated through a match result")
	}
}

func TestEnrichOverwritesSubstitutedCode(t *testing.T) {
	eob := &extract.EOBExtraction{DenialCode: "ZZ-1"}
	entry := Enrich(eob)
	if entry == nil || entry.Code != "CO-50" {
		t.Fatalf("entry = %+v", entry)
	}
	if eob.DenialCode != "CO-50" {
		t.Fatalf("DenialCode = %q, want overwritten to CO-50", eob.DenialCode)
	}
}

func TestEnrichKeepsMatchedCode(t *testing.T) {
	eob := &extract.EOBExtraction{DenialCode: "co-242"}
	entry := Enrich(eob)
	if entry == nil || entry.Code != "CO-242" {
		t.Fatalf("entry = %+v", entry)
	}
	if eob.DenialCode != "CO-242" {
		t.Fatalf("DenialCode = %q", eob.DenialCode)
	}
}

func TestEnrichNoCode(t *testing.T) {
	eob := &extract.EOBExtraction{PatientResponsibility: "120.00"}
	if entry := Enrich(eob); entry != nil {
		t.Fatalf("entry = %+v, want nil for processed claims", entry)
	}
}

func TestVerdict(t *testing.T) {
	denied := &extract.EOBExtraction{DenialCode: "CO-50"}
	entry := Enrich(denied)
	v := Verdict(denied, entry)
	if !strings.Contains(v, "Not Medically Necessary") || !strings.Contains(v, "73 percent") {
		t.Fatalf("denied verdict = %q", v)
	}

	processed := &extract.EOBExtraction{PatientResponsibility: "700.00"}
	v = Verdict(processed, nil)
	if !strings.Contains(v, "$700.00") {
		t.Fatalf("processed verdict = %q", v)
	}

	covered := &extract.EOBExtraction{PatientResponsibility: "0.00"}
	v = Verdict(covered, nil)
	if !strings.Contains(v, "fully covered") {
		t.Fatalf("covered verdict = %q", v)
	}
}

func TestCodesOrder(t *testing.T) {
	codes := Codes()
	if len(codes) != 5 || codes[0] != "CO-50" {
		t.Fatalf("Codes = %v", codes)
	}
}
