package classify

import "regexp"

// pattern pairs a compiled regex with its label and a base confidence score.
// Confidence reflects how specifically the expression identifies the target:
// structured formats score high, broad numeric shapes score low.
type pattern struct {
	re         *regexp.Regexp
	label      string
	confidence float64
}

var patterns = compilePatterns()

func compilePatterns() []pattern {
	specs := []struct {
		expr       string
		label      string
		confidence float64
	}{
		// Email: unambiguous structural markers.
		{`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`, LabelEmail, 0.95},
		// Sort code with account number.
		{`\b\d{2}-\d{2}-\d{2}\s?\d{8}\b`, LabelBank, 0.9},
		// National Insurance number, with or without grouping spaces.
		{`\b[A-CEGHJ-PR-TW-Z]{2}\s?\d{2}\s?\d{2}\s?\d{2}\s?[A-D]\b`, LabelNINO, 0.85},
		// UK postcode.
		{`\b[A-Z]{1,2}\d[A-Z\d]?\s?\d[A-Z]{2}\b`, LabelPostcode, 0.85},
		// Current-format vehicle registration, e.g. AF12 HPV.
		{`\b[A-Z]{2}\d{2}\s?[A-Z]{3}\b`, LabelVehicle, 0.8},
		// UK phone: broad, matches many numeric runs.
		{`(?:\+44\s?\d{2,4}|\(?0\d{2,4}\)?)[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}\b`, LabelPhone, 0.65},
		// Slash or dash dates: could be any date, not just a birth date.
		{`\b\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4}\b`, LabelDOB, 0.5},
	}

	out := make([]pattern, 0, len(specs))
	for _, s := range specs {
		out = append(out, pattern{
			re:         regexp.MustCompile(s.expr),
			label:      s.label,
			confidence: s.confidence,
		})
	}
	return out
}

// ClassifyPatterns runs the regex stage over the document text. It is pure
// and deterministic and always runs, with or without a model behind it.
func ClassifyPatterns(text string) []Detection {
	var out []Detection
	for _, p := range patterns {
		for _, m := range p.re.FindAllString(text, -1) {
			out = append(out, Detection{
				Text:       m,
				Label:      p.label,
				Confidence: p.confidence,
			})
		}
	}
	return out
}
