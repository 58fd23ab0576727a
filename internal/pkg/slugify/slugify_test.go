package slugify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"AI Tools":             "ai-tools",
		"  Hello,  World!  ":   "hello-world",
		"already-a-slug":       "already-a-slug",
		"Trailing punctuation": "trailing-punctuation",
		"C++ & Go":             "c-go",
		"":                     "",
	}
	for input, want := range cases {
		assert.Equal(t, want, Make(input), "input %q", input)
	}
}
