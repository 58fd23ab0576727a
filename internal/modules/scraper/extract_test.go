package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toolsite/core/internal/config"
)

func testExtractor() *Extractor {
	return NewExtractor(config.ScraperConfig{TimeoutSeconds: 5})
}

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtractTitleAndDescription(t *testing.T) {
	srv := serveHTML(t, `<html><head>
		<title>Foo</title>
		<meta name="description" content="Bar">
	</head><body></body></html>`)

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Foo", meta.Title)
	assert.Equal(t, "Bar", meta.Description)
	assert.Empty(t, meta.Favicon)
	assert.Empty(t, meta.Screenshots)
	assert.Empty(t, meta.Features)
}

func TestExtractTitlePriority(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "title tag wins over og and h1",
			body: `<title>From Title</title><meta property="og:title" content="From OG"><h1>From H1</h1>`,
			want: "From Title",
		},
		{
			name: "og title wins over h1",
			body: `<meta property="og:title" content="From OG"><h1>From H1</h1>`,
			want: "From OG",
		},
		{
			name: "h1 fallback",
			body: `<h1>From H1</h1>`,
			want: "From H1",
		},
		{
			name: "nothing yields empty",
			body: `<p>no headings here</p>`,
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := serveHTML(t, tc.body)
			meta, err := testExtractor().Extract(context.Background(), srv.URL)
			require.NoError(t, err)
			assert.Equal(t, tc.want, meta.Title)
		})
	}
}

func TestExtractDescriptionPriority(t *testing.T) {
	srv := serveHTML(t, `<head>
		<meta property="og:description" content="from og">
		<meta name="description" content="from meta">
	</head>`)

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "from meta", meta.Description)
}

func TestExtractFaviconKeptVerbatim(t *testing.T) {
	srv := serveHTML(t, `<head><link rel="icon" href="/static/favicon.ico"></head>`)

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	// relative hrefs are not resolved against the page URL
	assert.Equal(t, "/static/favicon.ico", meta.Favicon)
}

func TestExtractFaviconShortcutFallback(t *testing.T) {
	srv := serveHTML(t, `<head><link rel="shortcut icon" href="fav.png"></head>`)

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "fav.png", meta.Favicon)
}

func TestExtractScreenshotsFromOGImage(t *testing.T) {
	srv := serveHTML(t, `<head><meta property="og:image" content="https://cdn.example.com/shot.png"></head>`)

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/shot.png"}, meta.Screenshots)
}

func TestExtractFeaturesFromListItems(t *testing.T) {
	srv := serveHTML(t, `<body><ul>
		<li>too short</li>
		<li>Automatic metadata extraction</li>
		<li>Automatic metadata extraction</li>
		<li>Webhook notifications on updates</li>
		<li>`+strings.Repeat("x", 150)+`</li>
	</ul></body>`)

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	// short, overlong and duplicate entries are dropped
	assert.Equal(t, []string{
		"Automatic metadata extraction",
		"Webhook notifications on updates",
	}, meta.Features)
}

func TestExtractFeaturesCappedAtFive(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<ul>")
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&sb, "<li>Feature number %d of this tool</li>", i)
	}
	sb.WriteString("</ul>")
	srv := serveHTML(t, sb.String())

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, meta.Features, 5)
	assert.Equal(t, "Feature number 0 of this tool", meta.Features[0])
}

func TestExtractFeaturesFromClassedElements(t *testing.T) {
	srv := serveHTML(t, `<body>
		<div class="feature-card">Fast full-text search built in</div>
		<span class="benefits">Saves hours of manual curation</span>
	</body>`)

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, meta.Features, "Fast full-text search built in")
	assert.Contains(t, meta.Features, "Saves hours of manual curation")
}

func TestExtractSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		fmt.Fprint(w, "<title>ok</title>")
	}))
	defer srv.Close()

	ex := NewExtractor(config.ScraperConfig{TimeoutSeconds: 5, UserAgent: "CustomAgent/2.0"})
	_, err := ex.Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "CustomAgent/2.0", gotUA)
}

func TestExtractNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	assert.Nil(t, meta)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
	assert.Equal(t, "HTTP 404: Not Found", err.Error())
}

func TestExtractInvalidURL(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-url", "/relative/path"} {
		_, err := testExtractor().Extract(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidURL, "input %q", raw)
	}
}

func TestExtractNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := testExtractor().Extract(context.Background(), url)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestExtractMalformedMarkup(t *testing.T) {
	srv := serveHTML(t, `<<<@#$%<div><span>`)

	meta, err := testExtractor().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "", meta.Title)
	assert.Equal(t, "", meta.Description)
}
