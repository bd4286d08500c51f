package classify

import "strings"

var knownLabels = map[string]bool{
	LabelName:     true,
	LabelAddress:  true,
	LabelEmail:    true,
	LabelPhone:    true,
	LabelNINO:     true,
	LabelPostcode: true,
	LabelVehicle:  true,
	LabelBank:     true,
	LabelDOB:      true,
	LabelOther:    true,
}

const (
	// minDetectionConfidence is the floor below which a detection is
	// discarded rather than matched.
	minDetectionConfidence = 0.35
	maxDetectionTextLen    = 200
)

// ValidateDetection normalizes one detection in place: trims the text,
// folds unknown labels into "other" and clamps confidence to [0,1].
// Returns false when the detection is unusable.
func ValidateDetection(d *Detection) bool {
	if d == nil {
		return false
	}
	d.Text = strings.TrimSpace(d.Text)
	if len(d.Text) < 2 || len(d.Text) > maxDetectionTextLen {
		return false
	}
	d.Label = strings.ToLower(strings.TrimSpace(d.Label))
	if !knownLabels[d.Label] {
		d.Label = LabelOther
	}
	if d.Confidence < 0 {
		d.Confidence = 0
	}
	if d.Confidence > 1 {
		d.Confidence = 1
	}
	return d.Confidence >= minDetectionConfidence
}

// Merge validates detections from all stages and collapses duplicates by
// case-folded text and label, keeping the highest confidence seen. Input
// order is preserved for first occurrences.
func Merge(detections []Detection) []Detection {
	seen := make(map[string]int, len(detections))
	var out []Detection
	for _, d := range detections {
		if !ValidateDetection(&d) {
			continue
		}
		key := strings.ToLower(d.Text) + "\x00" + d.Label
		if i, ok := seen[key]; ok {
			if d.Confidence > out[i].Confidence {
				out[i].Confidence = d.Confidence
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, d)
	}
	return out
}
