package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name          string
		response      string
		wantAccepted  bool
		wantRationale string
	}{
		{
			name:          "pass with reasoning",
			response:      "<thinking>The profile mentions CNN litigation.</thinking>\n<answer>Pass</answer>",
			wantAccepted:  true,
			wantRationale: "The profile mentions CNN litigation.",
		},
		{
			name:          "fail with reasoning",
			response:      "<thinking>No media work mentioned.</thinking><answer>Fail</answer>",
			wantAccepted:  false,
			wantRationale: "No media work mentioned.",
		},
		{
			name:         "case insensitive answer",
			response:     "<answer>pass</answer>",
			wantAccepted: true,
		},
		{
			name:         "answer with surrounding whitespace",
			response:     "<answer>\n  Pass \n</answer>",
			wantAccepted: true,
		},
		{
			name:         "missing answer tag is a fail",
			response:     "<thinking>unsure</thinking>",
			wantAccepted: false,
		},
		{
			name:         "unterminated answer tag is a fail",
			response:     "<answer>Pass",
			wantAccepted: false,
		},
		{
			name:         "empty response",
			response:     "",
			wantAccepted: false,
		},
		{
			name:         "anything but pass is a fail",
			response:     "<answer>Maybe</answer>",
			wantAccepted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := parseVerdict(tt.response)
			assert.Equal(t, tt.wantAccepted, verdict.Accepted)
			if tt.wantRationale != "" {
				assert.Equal(t, tt.wantRationale, verdict.Rationale)
			}
		})
	}
}

func TestExtractTag(t *testing.T) {
	assert.Equal(t, "abc", extractTag("<x>abc</x>", "x"))
	assert.Equal(t, "", extractTag("<x>abc", "x"))
	assert.Equal(t, "", extractTag("abc</x>", "x"))
	assert.Equal(t, "first", extractTag("<x>first</x><x>second</x>", "x"))
}
