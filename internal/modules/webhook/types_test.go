package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEvents(t *testing.T) {
	cases := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "trims lowercases and dedups preserving order",
			input: []string{" Tool_Added ", "tool_added", "POST_PUBLISHED"},
			want:  []string{"tool_added", "post_published"},
		},
		{
			name:  "empty input defaults to tool_added",
			input: nil,
			want:  []string{"tool_added"},
		},
		{
			name:  "blank entries are dropped",
			input: []string{"", "  ", "tool_deleted"},
			want:  []string{"tool_deleted"},
		},
		{
			name:  "all-blank input defaults too",
			input: []string{"", "   "},
			want:  []string{"tool_added"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeEvents(tc.input))
		})
	}
}
