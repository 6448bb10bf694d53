package denial

import (
	"fmt"
	"strings"

	"claimlens/internal/extract"
)

// Match looks an extracted denial code up in the knowledge base.
// Matching is case-insensitive and ignores all whitespace. An empty
// code means the claim was processed normally and yields nil. An
// unrecognized code substitutes the default entry (the first in the
// knowledge base) so the user always gets actionable guidance.
func Match(code string) *Entry {
	cleaned := strings.ToUpper(strings.Join(strings.Fields(code), ""))
	if cleaned == "" {
		return nil
	}
	for i := range knowledge {
		if knowledge[i].Code == cleaned {
			e := knowledge[i]
			return &e
		}
	}
	e := knowledge[0]
	return &e
}

// Enrich matches eob's denial code and, when the code was substituted,
// overwrites it with the matched entry's code so the displayed code
// always agrees with the displayed guidance.
func Enrich(eob *extract.EOBExtraction) *Entry {
	entry := Match(eob.DenialCode)
	if entry != nil {
		eob.DenialCode = entry.Code
	}
	return entry
}

// Verdict renders the one-line outcome for a processed EOB. It is also
// the voice readout line.
func Verdict(eob *extract.EOBExtraction, entry *Entry) string {
	switch {
	case entry != nil:
		return fmt.Sprintf("This claim was denied for %s. You have a %d percent chance of winning an appeal.",
			entry.Reason, entry.SuccessProbability)
	case owesBalance(eob.PatientResponsibility):
		return fmt.Sprintf("This claim was processed. Your patient responsibility is $%s.", eob.PatientResponsibility)
	default:
		return "This claim appears to be fully covered or paid."
	}
}

// owesBalance reports whether a money string parses to more than zero.
func owesBalance(s string) bool {
	var f float64
	if _, err := fmt.Sscanf(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), "%f", &f); err != nil {
		return false
	}
	return f > 0
}
