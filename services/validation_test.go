package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArticleURL(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedURL string
		expectedMsg string
		expectedTag string
	}{
		{
			name:        "valid article",
			input:       "https://en.wikipedia.org/wiki/Alan_Turing",
			expectedURL: "https://en.wikipedia.org/wiki/Alan_Turing",
		},
		{
			name:        "surrounding whitespace is trimmed",
			input:       "  https://en.wikipedia.org/wiki/Photosynthesis \n",
			expectedURL: "https://en.wikipedia.org/wiki/Photosynthesis",
		},
		{
			name:        "other language subdomain",
			input:       "http://de.wikipedia.org/wiki/Berlin",
			expectedURL: "http://de.wikipedia.org/wiki/Berlin",
		},
		{
			name:        "mobile subdomain",
			input:       "https://en.m.wikipedia.org/wiki/Enigma_machine",
			expectedURL: "https://en.m.wikipedia.org/wiki/Enigma_machine",
		},
		{
			name:        "empty input",
			input:       "",
			expectedMsg: "Please enter a URL",
			expectedTag: "required",
		},
		{
			name:        "blank input",
			input:       "   ",
			expectedMsg: "Please enter a URL",
			expectedTag: "required",
		},
		{
			name:        "not a url",
			input:       "not-a-url",
			expectedMsg: "Please enter a valid URL",
			expectedTag: "url",
		},
		{
			name:        "missing wiki path",
			input:       "https://en.wikipedia.org/Alan_Turing",
			expectedMsg: "Must be a Wikipedia article URL",
			expectedTag: "wikiarticle",
		},
		{
			name:        "wiki path without title",
			input:       "https://en.wikipedia.org/wiki/",
			expectedMsg: "Must be a Wikipedia article URL",
			expectedTag: "wikiarticle",
		},
		{
			name:        "other host",
			input:       "https://example.com/wiki/Alan_Turing",
			expectedMsg: "Must be a Wikipedia article URL",
			expectedTag: "wikiarticle",
		},
		{
			name:        "lookalike host",
			input:       "https://notwikipedia.org/wiki/Alan_Turing",
			expectedMsg: "Must be a Wikipedia article URL",
			expectedTag: "wikiarticle",
		},
		{
			name:        "non http scheme",
			input:       "ftp://en.wikipedia.org/wiki/Alan_Turing",
			expectedMsg: "Must be a Wikipedia article URL",
			expectedTag: "wikiarticle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateArticleURL(tt.input)

			if tt.expectedMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedURL, got)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "url", validationErr.Field)
			assert.Equal(t, tt.expectedMsg, validationErr.Message)
			assert.Equal(t, tt.expectedTag, validationErr.Rule)
			assert.Empty(t, got)
		})
	}
}
