package classify

import "strings"

const classifyPrompt = `Identify personal or sensitive information in the following document text. Return a JSON array of findings. Each finding object must have these fields:

- "text": the exact text as it appears in the document (string)
- "label": one of "name", "address", "email", "phone", "nino", "postcode", "vehicle_reg", "bank_account", "dob", "other"
- "confidence": how certain you are this is sensitive, from 0.0 to 1.0 (float)

Rules:
- Copy "text" verbatim from the document, including punctuation and spacing, so it can be located again
- Report each distinct value once; do not merge different values into one finding
- People's names and postal addresses are always sensitive
- Case references, claim numbers and other identifiers tied to a person are "other"
- Dates are sensitive only when they identify a person (birth dates, death dates)
- Return an empty array [] if nothing sensitive is present

Respond with ONLY the JSON array, no other text.`

// BuildPrompt creates the full classification prompt for one text segment.
func BuildPrompt(segment string) string {
	var sb strings.Builder
	sb.WriteString(classifyPrompt)
	sb.WriteString("\n\n---\n")
	sb.WriteString(segment)
	return sb.String()
}
