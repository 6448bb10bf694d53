package extract

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const (
	// defaultPlanModel handles insurance card extraction.
	defaultPlanModel = "gemini-1.5-flash"
	// defaultVisionModel handles EOB extraction and cost lookups when
	// no override is configured.
	defaultVisionModel = "gemini-2.0-flash"
)

// defaultPreVisitModels are tried, in order, after any configured
// override and before the catalog's ranked list.
var defaultPreVisitModels = []string{"gemini-2.5-flash", "gemini-2.0-flash"}

// Client runs the structured-extraction tasks against the Gemini API.
// All methods are safe for concurrent use.
type Client struct {
	cfg     Config
	catalog *Catalog
	log     zerolog.Logger

	mu    sync.Mutex
	genai *genai.Client
}

// New builds a Client. The underlying SDK client is created lazily on
// first use so construction never touches the network.
func New(cfg Config, log zerolog.Logger) *Client {
	cfg = cfg.withEnv()
	return &Client{
		cfg:     cfg,
		catalog: NewCatalog(cfg),
		log:     log,
	}
}

// Catalog exposes the client's model catalog resolver.
func (c *Client) Catalog() *Catalog { return c.catalog }

func newGenAIClient(ctx context.Context, cfg Config) (*genai.Client, error) {
	hc := cfg.HTTPClient
	if hc == nil && cfg.Timeout > 0 {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		HTTPClient: hc,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
}

// ensure initializes the SDK client on first use.
func (c *Client) ensure(ctx context.Context) (*genai.Client, *Error) {
	if c.cfg.APIKey == "" {
		return nil, &Error{
			Class:   ClassUnauthorized,
			Status:  401,
			Message: "missing Gemini API key",
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.genai != nil {
		return c.genai, nil
	}
	gc, err := newGenAIClient(ctx, c.cfg)
	if err != nil {
		return nil, classify(err, "")
	}
	c.genai = gc
	return gc, nil
}

// invoke performs one generation call and returns the raw model text.
// Failures come back as a classified *Error; a 2xx response with no
// text is ClassEmptyOutput.
func (c *Client) invoke(ctx context.Context, model string, req Request) (string, *Error) {
	gc, cerr := c.ensure(ctx)
	if cerr != nil {
		return "", cerr
	}

	var parts []*genai.Part
	if req.Document != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.Document.MIMEType,
				Data:     req.Document.Data,
			},
		})
	}
	parts = append(parts, &genai.Part{Text: req.Instructions})
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	res, err := gc.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		e := classify(err, model)
		c.log.Debug().Str("model", model).Int("status", e.Status).
			Stringer("class", e.Class).Msg("generation failed")
		return "", e
	}

	text := joinTextParts(res)
	if strings.TrimSpace(text) == "" {
		return "", &Error{
			Class:   ClassEmptyOutput,
			Model:   model,
			Message: "no model output found from " + model,
		}
	}
	return text, nil
}

// joinTextParts concatenates every text part of the first candidate.
func joinTextParts(res *genai.GenerateContentResponse) string {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// visionModel resolves the model for the single-shot vision tasks.
func (c *Client) visionModel() string {
	if c.cfg.Model != "" {
		return c.cfg.Model
	}
	return defaultVisionModel
}

// ExtractPlan decodes an insurance card or plan document into a fully
// defaulted summary. Single-shot: errors propagate without fallback.
func (c *Client) ExtractPlan(ctx context.Context, in PlanInput) (*PlanSummary, error) {
	raw, ierr := c.invoke(ctx, defaultPlanModel, buildPlanRequest(in))
	if ierr != nil {
		return nil, ierr
	}
	payload, perr := parsePayload(raw, defaultPlanModel)
	if perr != nil {
		return nil, perr
	}
	out := normalizePlan(payload)
	c.log.Info().Str("plan", out.PlanName).Msg("plan extracted")
	return out, nil
}

// LookupTreatmentCost estimates costs for a named procedure, using the
// caller's plan as context when provided. Single-shot.
func (c *Client) LookupTreatmentCost(ctx context.Context, in CostInput) (*CostEstimate, error) {
	model := c.visionModel()
	raw, ierr := c.invoke(ctx, model, buildCostRequest(in))
	if ierr != nil {
		return nil, ierr
	}
	payload, perr := parsePayload(raw, model)
	if perr != nil {
		return nil, perr
	}
	out := normalizeCost(payload, in.Query)
	c.log.Info().Str("procedure", out.ProcedureName).Msg("treatment cost resolved")
	return out, nil
}

// ExtractEOB pulls denial codes, amounts, and line items out of an EOB
// or medical bill. Single-shot.
func (c *Client) ExtractEOB(ctx context.Context, in EOBInput) (*EOBExtraction, error) {
	model := c.visionModel()
	raw, ierr := c.invoke(ctx, model, buildEOBRequest(in))
	if ierr != nil {
		return nil, ierr
	}
	payload, perr := parsePayload(raw, model)
	if perr != nil {
		return nil, perr
	}
	out := normalizeEOB(payload)
	c.log.Info().Str("denial_code", out.DenialCode).Msg("eob extracted")
	return out, nil
}
