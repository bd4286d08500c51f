package classify

import "github.com/dgallion1/docredact/internal/match"

// Labels assignable to a detection. Anything else coming back from the model
// is folded into LabelOther during validation.
const (
	LabelName     = "name"
	LabelAddress  = "address"
	LabelEmail    = "email"
	LabelPhone    = "phone"
	LabelNINO     = "nino"
	LabelPostcode = "postcode"
	LabelVehicle  = "vehicle_reg"
	LabelBank     = "bank_account"
	LabelDOB      = "dob"
	LabelOther    = "other"
)

// Detection is one span of sensitive text found in a document, either by the
// pattern stage or by the model.
type Detection struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Phrases converts merged detections into matcher phrases.
func Phrases(detections []Detection) []match.Phrase {
	phrases := make([]match.Phrase, 0, len(detections))
	for _, d := range detections {
		phrases = append(phrases, match.Phrase{Text: d.Text, Label: d.Label})
	}
	return phrases
}
