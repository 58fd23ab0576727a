package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 1, 10},
		{"page=3&size=25", 3, 25},
		{"page=0&size=-5", 1, 10},
		{"page=abc&size=xyz", 1, 10},
		{"size=9999", 1, 100},
	}
	for _, tc := range cases {
		q := FromContext(queryContext(tc.query))
		assert.Equal(t, tc.wantPage, q.Page, "query %q", tc.query)
		assert.Equal(t, tc.wantSize, q.Size, "query %q", tc.query)
	}
}
