package extract

import (
	"net/http"
	"os"
	"time"
)

// Config holds credentials and HTTP knobs for the extraction client.
type Config struct {
	// APIKey authenticates against the Gemini Developer API. Falls back
	// to env GEMINI_API_KEY if empty and DetectEnv is true.
	APIKey string

	// Model overrides the fixed model for the vision tasks (EOB and
	// treatment cost). Falls back to env GEMINI_MODEL.
	Model string

	// PreVisitModel is tried first in the pre-visit fallback sequence.
	// Falls back to env GEMINI_MODEL_PREVISIT, then Model.
	PreVisitModel string

	// BaseURL points at a custom endpoint. Tests aim it at a local
	// server; empty means the public API.
	BaseURL string

	// Shared client options.
	HTTPClient *http.Client
	Timeout    time.Duration

	// CatalogTTL bounds how long a ranked model list is reused.
	// Zero means DefaultCatalogTTL.
	CatalogTTL time.Duration

	// DetectEnv pulls missing values from the environment.
	DetectEnv bool
}

func (c Config) withEnv() Config {
	if !c.DetectEnv {
		return c
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Model == "" {
		c.Model = os.Getenv("GEMINI_MODEL")
	}
	if c.PreVisitModel == "" {
		c.PreVisitModel = os.Getenv("GEMINI_MODEL_PREVISIT")
	}
	return c
}

// preVisitOverride resolves the model tried first by the pre-visit
// sequence: the dedicated override wins, then the general one.
func (c Config) preVisitOverride() string {
	if c.PreVisitModel != "" {
		return c.PreVisitModel
	}
	return c.Model
}
