package llm

import (
	"strings"
	"unicode/utf8"
)

// maxPromptTextBytes bounds how much document text goes into the user prompt.
const maxPromptTextBytes = 12000

// BuildSystemPrompt composes the system message with the normalization rules
// the schema validator later enforces: canonical year labels, bounded
// confidence, nulls for missing figures.
func BuildSystemPrompt(req ExtractRequest) string {
	defCur := strings.TrimSpace(req.DefaultCurrency)
	if defCur == "" {
		defCur = "INR"
	}

	parts := []string{
		"You are an income-statement parser. Return ONLY JSON that matches the provided JSON Schema.",
		"Extract every line item of the income statement in the order it appears in the document, top to bottom.",
		"Label each reporting period exactly as 'FY ' followed by the two-digit fiscal year (e.g. 'FY 24' for fiscal year 2024), and use the same set of period labels across all items.",
		"If a figure is missing for a period, set that period's value to null. Never substitute zero for a missing figure.",
		"Give each line item a 'confidence' between 0 and 1 reflecting how certain you are about its label and figures.",
		"Set 'currency' to the statement's currency code or label; default to " + defCur + " if uncertain.",
		"Set 'units' to the figure scale stated in the document (e.g. 'Millions', 'Crores', 'Absolute').",
		"Use 'notes' only for short clarifications (e.g. 'restated').",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt packages the document text with a filename hint.
func BuildUserPrompt(req ExtractRequest) string {
	var b strings.Builder
	if fn := strings.TrimSpace(req.FilenameHint); fn != "" {
		b.WriteString("Filename: ")
		b.WriteString(fn)
		b.WriteString("\n")
	}
	text := strings.TrimSpace(req.Text)
	b.WriteString("\nDocument text (first ~12k chars):\n")
	if len(text) > maxPromptTextBytes {
		// Back up to a rune boundary so the cut never splits a multi-byte
		// character.
		cut := maxPromptTextBytes
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		b.WriteString(text[:cut])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(text)
	}
	return b.String()
}
