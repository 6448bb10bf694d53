package extract

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultCatalogTTL bounds how long a fetched model list is reused.
const DefaultCatalogTTL = 5 * time.Minute

// familyRanks orders model families by preference. Checked top-down
// against the lowercased model name; first substring match wins.
var familyRanks = []struct {
	keyword string
	rank    int
}{
	{"2.5-flash", 0},
	{"2.0-flash", 1},
	{"flash-lite", 2},
	{"flash", 3},
	{"pro", 4},
}

const unrankedFamily = 5

func familyRank(model string) int {
	m := strings.ToLower(model)
	for _, fr := range familyRanks {
		if strings.Contains(m, fr.keyword) {
			return fr.rank
		}
	}
	return unrankedFamily
}

// rankModels sorts in place by (family rank, lexicographic).
func rankModels(models []string) {
	sort.SliceStable(models, func(i, j int) bool {
		ri, rj := familyRank(models[i]), familyRank(models[j])
		if ri != rj {
			return ri < rj
		}
		return models[i] < models[j]
	})
}

// Catalog resolves the ranked list of generation-capable models for a
// credential. It holds a single cache slot: a fetch for a different
// credential evicts the previous one.
type Catalog struct {
	cfg Config
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	key     string
	fetched time.Time
	models  []string
}

// NewCatalog builds a catalog resolver over cfg's endpoint settings.
func NewCatalog(cfg Config) *Catalog {
	ttl := cfg.CatalogTTL
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &Catalog{cfg: cfg, ttl: ttl, now: time.Now}
}

// Ranked returns the ranked model names usable for generation under
// credential. It never fails: any listing or decode problem yields an
// empty list so callers proceed with their static defaults. An empty
// credential short-circuits without touching the network.
func (c *Catalog) Ranked(ctx context.Context, credential string) []string {
	if credential == "" {
		return nil
	}

	c.mu.Lock()
	if c.key == credential && c.now().Sub(c.fetched) < c.ttl && len(c.models) > 0 {
		out := append([]string(nil), c.models...)
		c.mu.Unlock()
		return out
	}
	c.mu.Unlock()

	models := c.fetch(ctx, credential)
	if len(models) == 0 {
		// Failed soft. Keep whatever slot state we had.
		return nil
	}

	c.mu.Lock()
	c.key = credential
	c.fetched = c.now()
	c.models = models
	c.mu.Unlock()

	return append([]string(nil), models...)
}

func (c *Catalog) fetch(ctx context.Context, credential string) []string {
	cfg := c.cfg
	cfg.APIKey = credential
	client, err := newGenAIClient(ctx, cfg)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var models []string
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil
		}
		if m == nil || !supportsGenerate(m.SupportedActions) {
			continue
		}
		name := strings.TrimPrefix(m.Name, "models/")
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		models = append(models, name)
	}
	rankModels(models)
	return models
}

func supportsGenerate(actions []string) bool {
	for _, a := range actions {
		if a == "generateContent" {
			return true
		}
	}
	return false
}
