package typerighter

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeedbackHref(t *testing.T) {
	v := ValidationOutput{
		ID:          "in-1--5",
		Category:    "style",
		Annotation:  "passive voice",
		Suggestions: []string{"rewrite actively"},
	}
	payload := FeedbackForOutput(v, "rewrite actively", "https://example.org/article")

	href, err := BuildFeedbackHref("https://feedback.example.org/report?payload=", payload)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(href, "https://feedback.example.org/report?payload="))

	// The payload survives a decode round trip.
	encoded := strings.TrimPrefix(href, "https://feedback.example.org/report?payload=")
	raw, err := url.QueryUnescape(encoded)
	require.NoError(t, err)

	var decoded FeedbackPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, "in-1--5", decoded.MatchID)
	assert.Equal(t, "style", decoded.Category)
	assert.Equal(t, "passive voice", decoded.Message)
	assert.Equal(t, []string{"rewrite actively"}, decoded.Suggestions)
	assert.Equal(t, "rewrite actively", decoded.Replacement)
	assert.Equal(t, "https://example.org/article", decoded.URL)
}
