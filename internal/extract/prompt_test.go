package extract

import (
	"strings"
	"testing"
)

func TestBuildPlanRequest(t *testing.T) {
	doc := &Document{MIMEType: "image/png", Data: []byte{1, 2}}
	req := buildPlanRequest(PlanInput{Notes: "Aetna PPO, member 12345", Document: doc})
	if req.Document != doc {
		t.Fatal("document not attached")
	}
	if !strings.Contains(req.Instructions, "Extra context from user: Aetna PPO, member 12345") {
		t.Fatal("notes not embedded")
	}
	if !strings.Contains(req.Instructions, "Return ONLY valid JSON with no markdown") {
		t.Fatal("missing no-markdown clause")
	}
	if !strings.Contains(req.Instructions, `"planName"`) || !strings.Contains(req.Instructions, `"notCovered"`) {
		t.Fatal("schema fields missing")
	}

	// No notes: the context line disappears entirely.
	req = buildPlanRequest(PlanInput{})
	if strings.Contains(req.Instructions, "Extra context from user") {
		t.Fatal("empty notes should not render a context line")
	}
}

func TestBuildCostRequestEmbedsPlan(t *testing.T) {
	req := buildCostRequest(CostInput{
		Query: "knee MRI",
		Plan:  &PlanSummary{PlanName: "Gold PPO"},
	})
	if !strings.Contains(req.Instructions, `"knee MRI"`) {
		t.Fatal("query not embedded")
	}
	if !strings.Contains(req.Instructions, `"planName":"Gold PPO"`) {
		t.Fatal("plan context not embedded as JSON")
	}
	if req.Document != nil {
		t.Fatal("cost lookup is text-only")
	}

	req = buildCostRequest(CostInput{Query: "x-ray"})
	if !strings.Contains(req.Instructions, "Patient Insurance: null") {
		t.Fatal("absent plan should render null")
	}
}

func TestBuildEOBRequest(t *testing.T) {
	req := buildEOBRequest(EOBInput{Document: Document{MIMEType: "application/pdf", Data: []byte{9}}})
	if req.Document == nil || req.Document.MIMEType != "application/pdf" {
		t.Fatalf("document = %+v", req.Document)
	}
	if !strings.Contains(req.Instructions, "lineItems") || !strings.Contains(req.Instructions, "denialCode") {
		t.Fatal("schema fields missing")
	}
}

func TestBuildPreVisitRequestLocation(t *testing.T) {
	req := buildPreVisitRequest(PreVisitInput{
		Query:    "MRI prep",
		Location: &LatLng{Lat: 40.8, Lng: -73.96},
	})
	if !strings.Contains(req.Instructions, "Lat: 40.8, Lng: -73.96") {
		t.Fatal("location not rendered")
	}
	if !strings.Contains(req.Instructions, `"MRI prep"`) {
		t.Fatal("query not embedded")
	}

	req = buildPreVisitRequest(PreVisitInput{Query: "MRI prep"})
	if !strings.Contains(req.Instructions, "location (Unknown)") {
		t.Fatal("absent location should render Unknown")
	}
}
