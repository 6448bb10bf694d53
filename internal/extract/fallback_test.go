package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// scripted is one model's canned generation behavior.
type scripted struct {
	status int
	text   string
}

// genServer scripts per-model generation responses and records the
// order of generation calls. Model listing is served only when the
// discovered list is non-nil; otherwise it errors so the catalog
// contributes nothing.
type genServer struct {
	mu         sync.Mutex
	calls      []string
	responses  map[string]scripted
	discovered []string
}

func (g *genServer) generationCalls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *genServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if model, ok := generateModel(r.URL.Path); ok {
			g.mu.Lock()
			g.calls = append(g.calls, model)
			sc, scripted := g.responses[model]
			g.mu.Unlock()
			if !scripted {
				sc.status = http.StatusNotFound
			}
			if sc.status != http.StatusOK {
				w.WriteHeader(sc.status)
				fmt.Fprintf(w, `{"error":{"code":%d,"message":"scripted failure for %s"}}`, sc.status, model)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"candidates": []any{
					map[string]any{"content": map[string]any{
						"parts": []any{map[string]any{"text": sc.text}},
					}},
				},
			})
			return
		}

		if g.discovered == nil {
			http.Error(w, `{"error":{"code":500,"message":"listing disabled"}}`, http.StatusInternalServerError)
			return
		}
		models := make([]any, 0, len(g.discovered))
		for _, n := range g.discovered {
			models = append(models, map[string]any{
				"name":                       "models/" + n,
				"supportedActions":           []string{"generateContent"},
				"supportedGenerationMethods": []string{"generateContent"},
			})
		}
		json.NewEncoder(w).Encode(map[string]any{"models": models})
	}
}

func generateModel(path string) (string, bool) {
	i := strings.Index(path, ":generateContent")
	if i < 0 {
		return "", false
	}
	j := strings.LastIndex(path[:i], "/")
	return path[j+1 : i], true
}

func newFallbackClient(t *testing.T, g *genServer, override string) *Client {
	t.Helper()
	srv := httptest.NewServer(g.handler())
	t.Cleanup(srv.Close)
	return New(Config{
		APIKey:        "test-key",
		PreVisitModel: override,
		BaseURL:       srv.URL,
	}, zerolog.Nop())
}

const analysisText = `{"treatment":"Knee MRI","summary":"All set.","denialRiskValue":15}`

func TestFallbackStopsAtFirstUsableModel(t *testing.T) {
	g := &genServer{responses: map[string]scripted{
		"alpha":            {status: 404},
		"gemini-2.5-flash": {status: 200, text: analysisText},
	}}
	c := newFallbackClient(t, g, "alpha")

	out, err := c.AnalyzePreVisit(context.Background(), PreVisitInput{Query: "knee mri"})
	if err != nil {
		t.Fatalf("AnalyzePreVisit: %v", err)
	}
	if out.Treatment != "Knee MRI" || out.DenialRiskValue != 15 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if calls := g.generationCalls(); !reflect.DeepEqual(calls, []string{"alpha", "gemini-2.5-flash"}) {
		t.Fatalf("calls = %v, want exactly [alpha gemini-2.5-flash]", calls)
	}
}

func TestFallbackAbortsOnUnauthorized(t *testing.T) {
	g := &genServer{responses: map[string]scripted{
		"alpha":            {status: 401},
		"gemini-2.5-flash": {status: 200, text: analysisText},
	}}
	c := newFallbackClient(t, g, "alpha")

	_, err := c.AnalyzePreVisit(context.Background(), PreVisitInput{Query: "knee mri"})
	if ClassOf(err) != ClassUnauthorized {
		t.Fatalf("class = %v, want unauthorized", ClassOf(err))
	}
	if calls := g.generationCalls(); len(calls) != 1 {
		t.Fatalf("calls = %v, want abort after first", calls)
	}
}

func TestFallbackSurfacesRateLimitAtExhaustion(t *testing.T) {
	g := &genServer{responses: map[string]scripted{
		"alpha":            {status: 404},
		"gemini-2.5-flash": {status: 429},
		"gemini-2.0-flash": {status: 404},
	}}
	c := newFallbackClient(t, g, "alpha")

	_, err := c.AnalyzePreVisit(context.Background(), PreVisitInput{Query: "knee mri"})
	if ClassOf(err) != ClassRateLimited {
		t.Fatalf("class = %v, want rate-limited to win at exhaustion", ClassOf(err))
	}
	if calls := g.generationCalls(); len(calls) != 3 {
		t.Fatalf("calls = %v, want all three candidates tried", calls)
	}
}

func TestFallbackContinuesPastMalformedOutput(t *testing.T) {
	g := &genServer{responses: map[string]scripted{
		"alpha":            {status: 200, text: "I cannot answer in JSON, sorry"},
		"gemini-2.5-flash": {status: 200, text: "```json\n" + analysisText + "\n```"},
	}}
	c := newFallbackClient(t, g, "alpha")

	out, err := c.AnalyzePreVisit(context.Background(), PreVisitInput{Query: "knee mri"})
	if err != nil {
		t.Fatalf("AnalyzePreVisit: %v", err)
	}
	if out.Treatment != "Knee MRI" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if calls := g.generationCalls(); len(calls) != 2 {
		t.Fatalf("calls = %v", calls)
	}
}

func TestFallbackContinuesPastEmptyOutput(t *testing.T) {
	g := &genServer{responses: map[string]scripted{
		"alpha":            {status: 200, text: ""},
		"gemini-2.5-flash": {status: 200, text: analysisText},
	}}
	c := newFallbackClient(t, g, "alpha")

	if _, err := c.AnalyzePreVisit(context.Background(), PreVisitInput{Query: "knee mri"}); err != nil {
		t.Fatalf("AnalyzePreVisit: %v", err)
	}
	if calls := g.generationCalls(); len(calls) != 2 {
		t.Fatalf("calls = %v", calls)
	}
}

func TestFallbackCandidateOrderDedupes(t *testing.T) {
	// Discovered list repeats a default and adds one new name; the
	// repeat must not be tried twice.
	g := &genServer{
		responses:  map[string]scripted{},
		discovered: []string{"gemini-2.0-flash", "zeta-pro"},
	}
	c := newFallbackClient(t, g, "alpha")

	_, err := c.AnalyzePreVisit(context.Background(), PreVisitInput{Query: "knee mri"})
	if ClassOf(err) != ClassNotFound {
		t.Fatalf("class = %v, want last recorded not-found", ClassOf(err))
	}
	want := []string{"alpha", "gemini-2.5-flash", "gemini-2.0-flash", "zeta-pro"}
	if calls := g.generationCalls(); !reflect.DeepEqual(calls, want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe("a", []string{"b", "a", ""}, []string{"c", "b"})
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("dedupe = %v", got)
	}
	if got := dedupe("", nil); got != nil {
		t.Fatalf("dedupe(empty) = %v, want nil", got)
	}
}
