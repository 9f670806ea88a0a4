package typerighter

import (
	"encoding/json"
	"net/url"
)

// HoverGeometry carries the measured geometry of the hovered annotation,
// ready for a tooltip renderer to position itself with.
type HoverGeometry struct {
	OffsetLeft         float64 `json:"offsetLeft"`
	OffsetTop          float64 `json:"offsetTop"`
	Left               float64 `json:"left"`
	Top                float64 `json:"top"`
	Height             float64 `json:"height"`
	MouseOffsetX       float64 `json:"mouseOffsetX"`
	MouseOffsetY       float64 `json:"mouseOffsetY"`
	HeightOfSingleLine float64 `json:"heightOfSingleLine"`
}

// FeedbackPayload is the report a user files about one finding.
type FeedbackPayload struct {
	MatchID     string   `json:"matchId"`
	Category    string   `json:"category"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
	Replacement string   `json:"replacement"`
	URL         string   `json:"url"`
}

// BuildFeedbackHref appends the URL-encoded JSON payload to the
// configured base href, producing the link a feedback UI opens.
func BuildFeedbackHref(baseHref string, payload FeedbackPayload) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return baseHref + url.QueryEscape(string(b)), nil
}

// FeedbackForOutput builds the payload for a finding, with the suggestion
// the user chose (empty if none) and the page the report came from.
func FeedbackForOutput(v ValidationOutput, replacement, pageURL string) FeedbackPayload {
	return FeedbackPayload{
		MatchID:     v.ID,
		Category:    v.Category,
		Message:     v.Annotation,
		Suggestions: v.Suggestions,
		Replacement: replacement,
		URL:         pageURL,
	}
}
