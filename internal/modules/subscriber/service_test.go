package subscriber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	s := NewService(nil, nil)
	for _, email := range []string{"", "   ", "no-at-sign", "@leading", "trailing@"} {
		_, err := s.Subscribe(email, nil)
		assert.ErrorIs(t, err, ErrInvalidEmail, "input %q", email)
	}
}
