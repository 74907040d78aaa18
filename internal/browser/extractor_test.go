package browser

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHTML = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
<h1>Test Page</h1>
<p>Hello world. This is a <strong>bold</strong> and <em>italic</em> test.</p>
<p>Here is a <a href="https://example.com">link to
   example</a> and a <a href="docs/intro">relative one</a>.</p>
<p><a href="#top">skip me</a> <a href="javascript:void(0)">and me</a> <a href="">empty</a></p>
<p><a href="https://golang.org"></a></p>
</body>
</html>`

func TestSummarizeHTML(t *testing.T) {
	page := Summarize(&FetchResult{
		URL:         "https://test.local/page",
		FinalURL:    "https://test.local/page",
		StatusCode:  200,
		ContentType: "text/html; charset=utf-8",
		Body:        []byte(testHTML),
	})

	assert.Equal(t, "Test Page", page.Title)
	assert.Equal(t, 200, page.StatusCode)
	require.Len(t, page.Links, 3)

	assert.Equal(t, Link{Index: 1, Text: "link to example", URL: "https://example.com"}, page.Links[0])
	assert.Equal(t, Link{Index: 2, Text: "relative one", URL: "docs/intro"}, page.Links[1])
	assert.Equal(t, Link{Index: 3, Text: "https://golang.org", URL: "https://golang.org"}, page.Links[2])
}

func TestSummarizePlainText(t *testing.T) {
	body := strings.Repeat("word ", 200)
	page := Summarize(&FetchResult{
		URL:         "file:///tmp/notes.txt",
		FinalURL:    "file:///tmp/notes.txt",
		StatusCode:  200,
		ContentType: "text/plain",
		Body:        []byte(body),
	})

	assert.Equal(t, "file:///tmp/notes.txt", page.Title)
	assert.Empty(t, page.Links)
	assert.Equal(t, maxExcerptLen, len([]rune(page.Excerpt)))
	assert.True(t, strings.HasSuffix(page.Excerpt, "…"))
}

func TestSummarizeUntitledHTMLFallsBackToURL(t *testing.T) {
	page := Summarize(&FetchResult{
		URL:         "https://test.local/",
		FinalURL:    "https://test.local/",
		ContentType: "text/html",
		Body:        []byte(`<html><body></body></html>`),
	})

	assert.Equal(t, "https://test.local/", page.Title)
}

func TestExtractLinksNumbering(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<a href="/a">A</a><a href="#x">X</a><a href="DATA:text/plain,hi">D</a><a href="/b">B</a>`))
	require.NoError(t, err)

	links := ExtractLinks(doc)
	require.Len(t, links, 2)
	assert.Equal(t, 1, links[0].Index)
	assert.Equal(t, "/a", links[0].URL)
	assert.Equal(t, 2, links[1].Index)
	assert.Equal(t, "/b", links[1].URL)
}

func TestIsHTML(t *testing.T) {
	assert.True(t, IsHTML("text/html; charset=utf-8"))
	assert.True(t, IsHTML("Application/XHTML+XML"))
	assert.False(t, IsHTML("application/json"))
	assert.False(t, IsHTML(""))
}
