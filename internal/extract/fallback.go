package extract

import "context"

// AnalyzePreVisit runs the pre-visit analysis across a fallback
// sequence of models: the configured override first, then the static
// defaults, then whatever the live catalog ranks, de-duplicated
// keeping the first occurrence.
//
// Recoverable failures (unknown model, throttling, empty output,
// unparseable output) move on to the next candidate; anything else
// aborts immediately. If every candidate fails and throttling was seen
// at any point, the rate-limit error wins so the caller can tell the
// user to wait rather than to reconfigure.
func (c *Client) AnalyzePreVisit(ctx context.Context, in PreVisitInput) (*Analysis, error) {
	req := buildPreVisitRequest(in)
	candidates := dedupe(c.cfg.preVisitOverride(), defaultPreVisitModels, c.catalog.Ranked(ctx, c.cfg.APIKey))

	var lastErr *Error
	sawRateLimit := false

	for _, model := range candidates {
		raw, ierr := c.invoke(ctx, model, req)
		if ierr != nil {
			if ierr.Class == ClassRateLimited {
				sawRateLimit = true
			}
			if continuable(ierr.Class) {
				lastErr = ierr
				continue
			}
			return nil, ierr
		}

		payload, perr := parsePayload(raw, model)
		if perr != nil {
			lastErr = perr
			continue
		}

		out := normalizeAnalysis(payload)
		c.log.Info().Str("model", model).Str("treatment", out.Treatment).
			Msg("pre-visit analysis complete")
		return out, nil
	}

	if sawRateLimit {
		return nil, &Error{
			Class:   ClassRateLimited,
			Status:  429,
			Message: "rate limit reached for available models",
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &Error{
		Class:   ClassOther,
		Message: "pre-visit analysis failed for all configured models",
	}
}

// dedupe flattens override plus groups into one sequence, dropping
// empties and repeats while keeping first occurrences in order.
func dedupe(override string, groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(m string) {
		if m == "" || seen[m] {
			return
		}
		seen[m] = true
		out = append(out, m)
	}
	add(override)
	for _, g := range groups {
		for _, m := range g {
			add(m)
		}
	}
	return out
}
