package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	planSummaryFallback     = "Plan analyzed. Please verify coverage details directly with your insurer."
	costSummaryFallback     = "Cost estimate prepared. Confirm exact pricing with the provider before scheduling."
	analysisSummaryFallback = "Analysis completed. Please verify details with your provider and insurer."
)

// cleanPayload strips code fences and leading/trailing commentary,
// isolating the substring between the first '{' and the last '}'.
func cleanPayload(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// parsePayload cleans and decodes the model's text into a generic
// object. Any decode failure is MalformedJSON; nothing else is ever
// raised past this point.
func parsePayload(raw, model string) (map[string]any, *Error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(cleanPayload(raw)), &m); err != nil {
		return nil, &Error{
			Class:   ClassMalformedJSON,
			Model:   model,
			Message: "model returned unparseable output: " + err.Error(),
		}
	}
	return m, nil
}

// str reads a scalar as display text. Numbers are rendered; anything
// absent or empty yields the fallback.
func str(m map[string]any, key, fallback string) string {
	switch v := m[key].(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return fallback
}

// firstStr tries keys in order, returning the first non-empty string.
func firstStr(m map[string]any, fallback string, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return fallback
}

// num coerces a numeric field to an int, defaulting to zero when the
// value is absent, non-numeric, or not finite.
func num(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return int(v)
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && !math.IsInf(f, 0) {
			return int(f)
		}
	}
	return 0
}

// amount reads a money field, defaulting to "0.00".
func amount(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return "0.00"
}

func list(m map[string]any, key string) []any {
	v, _ := m[key].([]any)
	return v
}

// strs reads an array of display strings; always non-nil.
func strs(m map[string]any, key string) []string {
	out := []string{}
	for _, v := range list(m, key) {
		switch s := v.(type) {
		case string:
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		case float64:
			out = append(out, strconv.FormatFloat(s, 'f', -1, 64))
		}
	}
	return out
}

func obj(v any) map[string]any {
	m, _ := v.(map[string]any)
	if m == nil {
		return map[string]any{}
	}
	return m
}

func normalizePlan(m map[string]any) *PlanSummary {
	return &PlanSummary{
		PlanName:       str(m, "planName", "Plan name unavailable"),
		Provider:       str(m, "provider", "Provider unavailable"),
		PlanType:       str(m, "planType", "N/A"),
		Deductible:     str(m, "deductible", "N/A"),
		OutOfPocketMax: str(m, "outOfPocketMax", "N/A"),
		Copay:          str(m, "copay", "N/A"),
		MemberID:       str(m, "memberId", "Not on card"),
		GroupNumber:    str(m, "groupNumber", "Not on card"),
		PayerID:        str(m, "payerId", "Not on card"),
		RxBIN:          str(m, "rxBin", "Not on card"),
		PCPName:        str(m, "pcpName", "Not on card"),
		PCPPhone:       str(m, "pcpPhone", "Not on card"),
		DrugCoverage:   str(m, "drugCoverage", "N/A"),
		Covered:        strs(m, "covered"),
		NotCovered:     strs(m, "notCovered"),
		Summary:        str(m, "summary", planSummaryFallback),
	}
}

func normalizeCost(m map[string]any, query string) *CostEstimate {
	nameFallback := "Treatment lookup"
	if strings.TrimSpace(query) != "" {
		nameFallback = query
	}
	breakdown := []CostLine{}
	for i, v := range list(m, "breakdown") {
		line := obj(v)
		breakdown = append(breakdown, CostLine{
			Label: str(line, "label", fmt.Sprintf("Item %d", i+1)),
			Value: str(line, "value", "N/A"),
		})
	}
	return &CostEstimate{
		ProcedureName:     str(m, "procedureName", nameFallback),
		Description:       str(m, "description", "N/A"),
		EstimatedCost:     str(m, "estimatedCost", "N/A"),
		YourEstimatedCost: str(m, "yourEstimatedCost", "N/A"),
		Breakdown:         breakdown,
		Advice:            str(m, "advice", "N/A"),
		Summary:           str(m, "summary", costSummaryFallback),
	}
}

func normalizeEOB(m map[string]any) *EOBExtraction {
	items := []LineItem{}
	for i, v := range list(m, "lineItems") {
		line := obj(v)
		jargon := str(line, "jargonDescription", fmt.Sprintf("Service line %d", i+1))
		items = append(items, LineItem{
			CPTCode:                 str(line, "cptCode", "N/A"),
			JargonDescription:       jargon,
			PlainEnglishTranslation: str(line, "plainEnglishTranslation", jargon),
			BilledCharge:            amount(line, "billedCharge"),
			NetworkDiscount:         amount(line, "networkDiscount"),
			AllowedAmount:           amount(line, "allowedAmount"),
			PatientResponsibility:   amount(line, "patientResponsibility"),
		})
	}
	return &EOBExtraction{
		// A null or missing code means the claim looks processed; keep
		// it empty rather than inventing a placeholder.
		DenialCode:            str(m, "denialCode", ""),
		BilledAmount:          amount(m, "billedAmount"),
		InsurancePaid:         amount(m, "insurancePaid"),
		PatientResponsibility: amount(m, "patientResponsibility"),
		Provider:              str(m, "provider", "Unknown provider"),
		Date:                  str(m, "date", "N/A"),
		LineItems:             items,
	}
}

func normalizeAnalysis(m map[string]any) *Analysis {
	steps := []MitigationStep{}
	for i, v := range list(m, "mitigationSteps") {
		s := obj(v)
		steps = append(steps, MitigationStep{
			Step: firstStr(s, fmt.Sprintf("Step %d", i+1), "step", "title"),
			Tip:  firstStr(s, "Review this action with your insurer.", "tip", "desc"),
		})
	}
	doctors := []Doctor{}
	for i, v := range list(m, "nearbyDoctors") {
		d := obj(v)
		doctors = append(doctors, Doctor{
			Name:      str(d, "name", fmt.Sprintf("Specialist %d", i+1)),
			Specialty: str(d, "specialty", "Specialty not specified"),
			Dist:      str(d, "dist", "Distance unavailable"),
			Rating:    str(d, "rating", "N/A"),
		})
	}
	phases := []ProcedureStep{}
	for i, v := range list(m, "procedureSteps") {
		p := obj(v)
		phases = append(phases, ProcedureStep{
			Title: str(p, "title", fmt.Sprintf("Phase %d", i+1)),
			Desc:  str(p, "desc", "Details were not provided by the model."),
		})
	}
	return &Analysis{
		Type:            str(m, "type", "analysis"),
		DenialMessage:   str(m, "denialMessage", ""),
		Treatment:       str(m, "treatment", "Treatment analysis"),
		CoverageStatus:  str(m, "coverageStatus", "Coverage details unavailable"),
		Hospital:        str(m, "hospital", "Hospital recommendation unavailable"),
		EstTotalCost:    str(m, "estTotalCost", "N/A"),
		YourCost:        str(m, "yourCost", "N/A"),
		InsurancePays:   str(m, "insurancePays", "N/A"),
		DenialRiskValue: num(m, "denialRiskValue"),
		MitigationSteps: steps,
		NearbyDoctors:   doctors,
		ProcedureSteps:  phases,
		Summary:         str(m, "summary", analysisSummaryFallback),
	}
}
