package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/toolsite/core/internal/config"
	"golang.org/x/net/html"
)

const (
	maxFeatures      = 5
	minFeatureLength = 10
	maxFeatureLength = 100

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// ErrInvalidURL is returned when the target is not an absolute URL.
var ErrInvalidURL = errors.New("url must be a valid absolute URL")

// FetchError signals a non-2xx response from the target page.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, http.StatusText(e.Status))
}

// NetworkError signals a transport failure (DNS, TLS, connection reset).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// ToolMetadata is the structured summary derived from a webpage.
type ToolMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Favicon     string   `json:"favicon"`
	Screenshots []string `json:"screenshots"`
	Features    []string `json:"features"`
}

// Extractor fetches a webpage and derives ToolMetadata from its markup.
type Extractor struct {
	client    *http.Client
	userAgent string
}

// NewExtractor builds an Extractor with a bounded fetch timeout.
func NewExtractor(cfg config.ScraperConfig) *Extractor {
	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Extractor{
		client:    &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		userAgent: ua,
	}
}

// Extract fetches the page at rawURL and returns its metadata summary.
// The operation never partially succeeds: either the body is retrieved in
// full, or an error is returned. Extraction itself degrades to empty fields
// on malformed markup rather than failing.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*ToolMetadata, error) {
	u, err := neturl.Parse(strings.TrimSpace(rawURL))
	if err != nil || !u.IsAbs() {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, ErrInvalidURL
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return extractMetadata(string(body)), nil
}

// extractMetadata walks the parsed document. html.Parse accepts arbitrary
// input, so this path cannot fail; missing sources yield empty fields.
func extractMetadata(markup string) *ToolMetadata {
	meta := &ToolMetadata{Screenshots: []string{}, Features: []string{}}

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return meta
	}

	meta.Title = firstNonEmpty(
		func() string { return textOf(findElement(doc, isTag("title"))) },
		func() string { return attrOf(findElement(doc, isMetaProperty("og:title")), "content") },
		func() string { return textOf(findElement(doc, isTag("h1"))) },
	)
	meta.Description = firstNonEmpty(
		func() string { return attrOf(findElement(doc, isMetaName("description")), "content") },
		func() string { return attrOf(findElement(doc, isMetaProperty("og:description")), "content") },
	)
	meta.Favicon = firstNonEmpty(
		func() string { return rawAttrOf(findElement(doc, isLinkRel("icon")), "href") },
		func() string { return rawAttrOf(findElement(doc, isLinkRel("shortcut icon")), "href") },
	)

	if img := attrOf(findElement(doc, isMetaProperty("og:image")), "content"); img != "" {
		meta.Screenshots = []string{img}
	}

	meta.Features = collectFeatures(doc)
	return meta
}

// collectFeatures scans list items, then "feature"-classed elements, then
// "benefit"-classed elements, keeping deduplicated texts of 10-100
// characters, capped at five in first-found order.
func collectFeatures(doc *html.Node) []string {
	features := make([]string, 0, maxFeatures)
	seen := map[string]struct{}{}

	passes := []func(*html.Node) bool{
		isTag("li"),
		hasClassContaining("feature"),
		hasClassContaining("benefit"),
	}
	for _, match := range passes {
		walk(doc, func(n *html.Node) {
			if len(features) >= maxFeatures || !match(n) {
				return
			}
			text := collapseSpace(innerText(n))
			length := len([]rune(text))
			if length < minFeatureLength || length > maxFeatureLength {
				return
			}
			if _, dup := seen[text]; dup {
				return
			}
			seen[text] = struct{}{}
			features = append(features, text)
		})
		if len(features) >= maxFeatures {
			break
		}
	}
	return features
}

func firstNonEmpty(sources ...func() string) string {
	for _, src := range sources {
		if v := src(); v != "" {
			return v
		}
	}
	return ""
}

// walk visits every element node in document order.
func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// findElement returns the first element in document order matching the predicate.
func findElement(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	var search func(*html.Node)
	search = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && match(n) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			search(c)
		}
	}
	search(root)
	return found
}

func isTag(name string) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Data == name }
}

func isMetaName(name string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == "meta" && strings.EqualFold(attr(n, "name"), name)
	}
}

func isMetaProperty(property string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == "meta" && strings.EqualFold(attr(n, "property"), property)
	}
}

func isLinkRel(rel string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == "link" && strings.EqualFold(strings.TrimSpace(attr(n, "rel")), rel)
	}
}

func hasClassContaining(fragment string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return strings.Contains(strings.ToLower(attr(n, "class")), fragment)
	}
}

func attr(n *html.Node, name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// attrOf returns the trimmed attribute value of n, or "" when n is nil.
func attrOf(n *html.Node, name string) string {
	return strings.TrimSpace(attr(n, name))
}

// rawAttrOf preserves the attribute verbatim; favicon hrefs are returned
// as-is, possibly relative, without resolution against the page base.
func rawAttrOf(n *html.Node, name string) string {
	return attr(n, name)
}

// textOf returns the trimmed, space-collapsed inner text of n.
func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	return collapseSpace(innerText(n))
}

func innerText(n *html.Node) string {
	var sb strings.Builder
	var gather func(*html.Node)
	gather = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			gather(c)
		}
	}
	gather(n)
	return sb.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
