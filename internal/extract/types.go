package extract

// Task identifies one structured-extraction flow. Tasks are not
// interchangeable: each pins its own instruction text and output shape.
type Task int

const (
	// TaskPlanExtraction decodes an insurance card or plan document.
	TaskPlanExtraction Task = iota
	// TaskTreatmentCost estimates costs for a named procedure.
	TaskTreatmentCost
	// TaskEOBExtraction pulls denial codes and line items from an EOB.
	TaskEOBExtraction
	// TaskPreVisitAnalysis prepares a patient for an upcoming visit.
	TaskPreVisitAnalysis
)

func (t Task) String() string {
	switch t {
	case TaskPlanExtraction:
		return "plan-extraction"
	case TaskTreatmentCost:
		return "treatment-cost"
	case TaskEOBExtraction:
		return "eob-extraction"
	case TaskPreVisitAnalysis:
		return "previsit-analysis"
	default:
		return "unknown"
	}
}

// Document is an inline binary attachment for vision-capable tasks.
type Document struct {
	MIMEType string
	Data     []byte
}

// Request is the payload for one generation call. Immutable once built.
type Request struct {
	Instructions string
	Document     *Document
}

// LatLng is an optional caller location for the pre-visit task.
type LatLng struct {
	Lat float64
	Lng float64
}

// PlanInput feeds TaskPlanExtraction.
type PlanInput struct {
	Notes    string
	Document *Document
}

// CostInput feeds TaskTreatmentCost. Plan is optional insurance context
// carried over from an earlier plan extraction.
type CostInput struct {
	Query string
	Plan  *PlanSummary
}

// EOBInput feeds TaskEOBExtraction. The document is required.
type EOBInput struct {
	Document Document
}

// PreVisitInput feeds TaskPreVisitAnalysis.
type PreVisitInput struct {
	Query    string
	Document *Document
	Location *LatLng
}

// PlanSummary is the fully-defaulted result of plan extraction. Every
// field is populated; consumers never branch on absence.
type PlanSummary struct {
	PlanName       string   `json:"planName"`
	Provider       string   `json:"provider"`
	PlanType       string   `json:"planType"`
	Deductible     string   `json:"deductible"`
	OutOfPocketMax string   `json:"outOfPocketMax"`
	Copay          string   `json:"copay"`
	MemberID       string   `json:"memberId"`
	GroupNumber    string   `json:"groupNumber"`
	PayerID        string   `json:"payerId"`
	RxBIN          string   `json:"rxBin"`
	PCPName        string   `json:"pcpName"`
	PCPPhone       string   `json:"pcpPhone"`
	DrugCoverage   string   `json:"drugCoverage"`
	Covered        []string `json:"covered"`
	NotCovered     []string `json:"notCovered"`
	Summary        string   `json:"summary"`
}

// CostLine is one labeled entry of a cost breakdown.
type CostLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CostEstimate is the fully-defaulted result of a treatment lookup.
type CostEstimate struct {
	ProcedureName     string     `json:"procedureName"`
	Description       string     `json:"description"`
	EstimatedCost     string     `json:"estimatedCost"`
	YourEstimatedCost string     `json:"yourEstimatedCost"`
	Breakdown         []CostLine `json:"breakdown"`
	Advice            string     `json:"advice"`
	Summary           string     `json:"summary"`
}

// LineItem is one service line extracted from an EOB.
type LineItem struct {
	CPTCode                 string `json:"cptCode"`
	JargonDescription       string `json:"jargonDescription"`
	PlainEnglishTranslation string `json:"plainEnglishTranslation"`
	BilledCharge            string `json:"billedCharge"`
	NetworkDiscount         string `json:"networkDiscount"`
	AllowedAmount           string `json:"allowedAmount"`
	PatientResponsibility   string `json:"patientResponsibility"`
}

// EOBExtraction is the fully-defaulted result of EOB analysis.
// DenialCode is empty when the claim looks processed and paid.
type EOBExtraction struct {
	DenialCode            string     `json:"denialCode"`
	BilledAmount          string     `json:"billedAmount"`
	InsurancePaid         string     `json:"insurancePaid"`
	PatientResponsibility string     `json:"patientResponsibility"`
	Provider              string     `json:"provider"`
	Date                  string     `json:"date"`
	LineItems             []LineItem `json:"lineItems"`
}

// MitigationStep is one denial-risk mitigation action.
type MitigationStep struct {
	Step string `json:"step"`
	Tip  string `json:"tip"`
}

// Doctor is one nearby-specialist suggestion.
type Doctor struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Dist      string `json:"dist"`
	Rating    string `json:"rating"`
}

// ProcedureStep is one phase of the treatment roadmap.
type ProcedureStep struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// AnalysisTypeDenial marks a refusal: the query was unrelated to
// hospital visits and the assistant declined to answer.
const AnalysisTypeDenial = "denial"

// Analysis is the fully-defaulted result of a pre-visit analysis.
type Analysis struct {
	Type            string           `json:"type"`
	DenialMessage   string           `json:"denialMessage,omitempty"`
	Treatment       string           `json:"treatment"`
	CoverageStatus  string           `json:"coverageStatus"`
	Hospital        string           `json:"hospital"`
	EstTotalCost    string           `json:"estTotalCost"`
	YourCost        string           `json:"yourCost"`
	InsurancePays   string           `json:"insurancePays"`
	DenialRiskValue int              `json:"denialRiskValue"`
	MitigationSteps []MitigationStep `json:"mitigationSteps"`
	NearbyDoctors   []Doctor         `json:"nearbyDoctors"`
	ProcedureSteps  []ProcedureStep  `json:"procedureSteps"`
	Summary         string           `json:"summary"`
}
