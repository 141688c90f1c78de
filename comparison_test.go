package parsecompare_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/parsecompare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparisonResult_JSON(t *testing.T) {
	t.Parallel()

	result := parsecompare.ComparisonResult{
		URLDriven: parsecompare.Succeeded(&parsecompare.ArticleRecord{
			Title:     "Hello",
			Content:   "<p>Hello world</p>",
			URL:       "https://example.com/a",
			Author:    parsecompare.DefaultAuthor,
			WordCount: 2,
			Domain:    "example.com",
		}),
		DocumentDriven: parsecompare.Failed("HTTP error! status: 404"),
	}

	b, err := json.Marshal(result)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"postlight": {
			"success": true,
			"data": {
				"title": "Hello",
				"content": "<p>Hello world</p>",
				"url": "https://example.com/a",
				"author": "Unknown",
				"description": "",
				"word_count": 2,
				"image": "",
				"domain": "example.com"
			},
			"error": null
		},
		"defuddle": {
			"success": false,
			"data": null,
			"error": "HTTP error! status: 404"
		}
	}`, string(b))
}

func TestEngineOutcome_ErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, parsecompare.Succeeded(&parsecompare.ArticleRecord{}).ErrorMessage())
	assert.Equal(t, "boom", parsecompare.Failed("boom").ErrorMessage())
}
