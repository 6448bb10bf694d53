package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildPlanRequest assembles the insurance-card extraction prompt.
// The document rides along as inline data; free-text notes are folded
// into the instructions.
func buildPlanRequest(in PlanInput) Request {
	var b strings.Builder
	b.WriteString(`You are a medical insurance expert with deep knowledge of all US insurance plans.

Step 1: Extract every visible detail from this insurance card or document (plan name, provider, member ID, group number, copay, payer ID, phone numbers, plan type, drug coverage info, RxBIN, RxPCN, RxGrp).

Step 2: Based on the plan type and provider you identified, use your expert knowledge to generate a FULL detailed breakdown of what this plan typically covers and excludes. Be specific — list at least 8 covered items and 6 excluded items based on this exact plan type.

`)
	if strings.TrimSpace(in.Notes) != "" {
		fmt.Fprintf(&b, "Extra context from user: %s\n\n", in.Notes)
	}
	b.WriteString(`Return ONLY valid JSON with no markdown, no backticks, no explanation:
{
  "planName": "full plan name extracted from card",
  "provider": "insurance company name",
  "planType": "PPO / HMO / Medicare Advantage / etc",
  "deductible": "typical deductible for this plan type e.g. $0 for Medicare Advantage",
  "outOfPocketMax": "typical out of pocket max for this plan type",
  "copay": "PCP $XX / Specialist $XX / ER $XX extracted or inferred",
  "memberId": "extracted from card",
  "groupNumber": "extracted from card",
  "payerId": "extracted from card if present",
  "rxBin": "extracted from card if present",
  "pcpName": "extracted from card if present",
  "pcpPhone": "extracted from card if present",
  "drugCoverage": "description of prescription drug coverage based on plan type",
  "covered": [
    "at least 8 specific things covered by this exact plan type"
  ],
  "notCovered": [
    "at least 6 specific things NOT covered by this exact plan type"
  ],
  "summary": "2-3 sentence plain english summary of this specific plan and what kind of patient it suits best"
}`)
	return Request{Instructions: b.String(), Document: in.Document}
}

// buildCostRequest assembles the treatment-cost prompt. Plan context,
// when present, is embedded as JSON so the model can reason over it.
func buildCostRequest(in CostInput) Request {
	planJSON := "null"
	if in.Plan != nil {
		if b, err := json.Marshal(in.Plan); err == nil {
			planJSON = string(b)
		}
	}
	instructions := fmt.Sprintf(`You are a medical insurance cost expert.
Search Query: %q
Patient Insurance: %s

Return ONLY valid JSON with no markdown, no backticks, no explanation:
{
  "procedureName": "official name of the medical procedure or treatment",
  "description": "1-2 sentence description of what this involves",
  "estimatedCost": "$X,XXX",
  "yourEstimatedCost": "$X,XXX",
  "breakdown": [
    { "label": "Facility Fee", "value": "$XXX" },
    { "label": "Provider Fee", "value": "$XXX" },
    { "label": "Insurance Covered", "value": "-$XXX" },
    { "label": "Your Responsibility", "value": "$XXX" }
  ],
  "advice": "Pro-tip for saving money on this specific procedure (e.g. go to outpatient vs hospital)",
  "summary": "1 sentence plain english summary for audio readout"
}`, in.Query, planJSON)
	return Request{Instructions: instructions}
}

// buildEOBRequest assembles the EOB/bill extraction prompt. This task
// always carries a document.
func buildEOBRequest(in EOBInput) Request {
	instructions := `You are a medical billing expert and claims analyst. Extract the following from this Explanation of Benefits (EOB) or medical bill in a structured format:
1. The primary Denial Code or Reason Code (e.g. CO-50, CO-97, PR-1, etc.). Look for Remark Codes. If the bill looks normal and paid, return null for denialCode. If you can't find a code but it looks denied, infer a standard code like CO-50.
2. The total Billed Amount (just the number).
3. The Insurance Paid amount (just the number).
4. The Patient Responsibility amount (just the number).
5. The Provider or Hospital Name.
6. The Date of Service.
7. Line Items: Extract each individual service line from the EOB.
    CRITICAL: You MUST return a populated "lineItems" array. If the bill only has a 'Total' summary and no itemization, you MUST create at least one line item representing the primary service using the Total amounts.
    For each line item (MUST use exact camelCase key names):
    - "cptCode": Identify the CPT/HCPCS code (if visible, otherwise guess a reasonable code based on the Provider/Service Date context).
    - "jargonDescription": Translate the medical jargon of that service into a plain-English "patient friendly" description.
    - "plainEnglishTranslation": Further simplify the description.
    - "billedCharge": Extract the Billed Charge for that line.
    - "networkDiscount": Extract the Network Discount/Adjustment for that line (default to 0.00 if missing).
    - "allowedAmount": Extract the Allowed Amount for that line (default to 0.00 if missing).
    - "patientResponsibility": Extract the Copay/Coinsurance/Deductible for that line (default to 0.00 if missing).

Return ONLY valid JSON with no markdown, no backticks, no explanation:
{
  "denialCode": "CO-97",
  "billedAmount": "1500.00",
  "insurancePaid": "800.00",
  "patientResponsibility": "700.00",
  "provider": "Hospital Name",
  "date": "MM/DD/YYYY",
  "lineItems": [
    {
      "cptCode": "99213",
      "jargonDescription": "Office/outpatient visit est",
      "plainEnglishTranslation": "Standard doctor's office visit (Moderate length)",
      "billedCharge": "250.00",
      "networkDiscount": "100.00",
      "allowedAmount": "150.00",
      "patientResponsibility": "150.00"
    }
  ]
}`
	doc := in.Document
	return Request{Instructions: instructions, Document: &doc}
}

// buildPreVisitRequest assembles the pre-visit assistant prompt.
// Location is rendered as "Lat: x, Lng: y" or "Unknown".
func buildPreVisitRequest(in PreVisitInput) Request {
	loc := "Unknown"
	if in.Location != nil {
		loc = fmt.Sprintf("Lat: %v, Lng: %v", in.Location.Lat, in.Location.Lng)
	}
	instructions := fmt.Sprintf(`You are a "Pre Visit Hospital Assistant". Your ONLY purpose is to help patients prepare for hospital visits by analyzing insurance coverage, naming a nearby hospital, and estimating treatment costs/procedures.

STRICT RULE: If the user's query is UNRELATED to medical insurance, hospital visits, pre-authorization, or surgical/treatment preparation, you MUST politely refuse to answer and state that you are a specialized Hospital Pre-Visit Assistant.

If an insurance card is provided, extract its details (Provider, Plan Name, Member ID, Copay, Deductible).

TASK: Based on the insurance (if provided), the user's query (%q), and user's location (%s), provide:
1. Analysis of coverage for the specific treatment mentioned.
2. A "Nearest Recommended Hospital" (Mock a realistic hospital name near student residential areas like Columbia University or UCLA depending on context, or a general name).
3. Estimated total cost, "Your Responsibility", and "Insurance Pays" based on plan typicals (HMO/PPO).
4. Step-by-step procedure breakdown (At least 3 phases: e.g., Preparation, Treatment, Recovery).
5. Denial Risk Percentage (0-100) and at least 3 specific mitigation steps to overcome that risk.
6. Suggest at least 3 "Nearby Specialists/Doctors" for this treatment (Mocked realistic names nearby).

Return ONLY valid JSON with no markdown:
{
  "type": "analysis" | "denial",
  "denialMessage": "Only if unrelated",
  "treatment": "The procedure name",
  "coverageStatus": "Covered / Partially Covered / Pre-auth Required",
  "hospital": "Mocked Hospital Name",
  "estTotalCost": "$X,XXX",
  "yourCost": "$XXX",
  "insurancePays": "$X,XXX",
  "denialRiskValue": 15,
  "mitigationSteps": [
    {"step": "Detailed step", "tip": "Pro tip"}
  ],
  "nearbyDoctors": [
    {"name": "Dr. Name", "specialty": "Specialty", "dist": "0.X miles", "rating": 4.9}
  ],
  "procedureSteps": [
    {"title": "Step title", "desc": "Brief description"}
  ],
  "summary": "4-5 sentence summary for audio readout. Mention the hospital, the doctor, and the key treatment steps."
}`, in.Query, loc)
	return Request{Instructions: instructions, Document: in.Document}
}
