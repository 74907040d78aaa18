package browser

import (
	"bytes"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

const maxExcerptLen = 280

// Page is the summary of a loaded address: enough for a status line and a
// numbered list of links, nothing that needs layout.
type Page struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	Title       string
	SiteName    string
	Excerpt     string
	Links       []Link
	FetchTime   time.Duration
}

// Link is an outgoing hyperlink. URL is the href exactly as written in the
// page so that relative links go through address resolution.
type Link struct {
	Index int
	Text  string
	URL   string
}

// Summarize builds a Page from a fetch result. Non-HTML bodies get a title
// from the address and a plain-text excerpt.
func Summarize(result *FetchResult) *Page {
	page := &Page{
		URL:         result.URL,
		FinalURL:    result.FinalURL,
		StatusCode:  result.StatusCode,
		ContentType: result.ContentType,
		FetchTime:   result.Duration,
	}

	if !IsHTML(result.ContentType) {
		page.Title = result.FinalURL
		page.Excerpt = truncate(strings.TrimSpace(string(result.Body)), maxExcerptLen)
		return page
	}

	if parsedURL, err := url.Parse(result.FinalURL); err == nil {
		if article, err := readability.FromReader(bytes.NewReader(result.Body), parsedURL); err == nil {
			page.Title = strings.TrimSpace(article.Title)
			page.SiteName = strings.TrimSpace(article.SiteName)
			page.Excerpt = truncate(collapseSpace(article.Excerpt), maxExcerptLen)
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(result.Body))
	if err != nil {
		if page.Title == "" {
			page.Title = result.FinalURL
		}
		return page
	}

	if page.Title == "" {
		page.Title = collapseSpace(doc.Find("title").First().Text())
	}
	if page.Title == "" {
		page.Title = result.FinalURL
	}
	page.Links = ExtractLinks(doc)
	return page
}

// ExtractLinks returns the followable anchors of doc in document order,
// numbered from 1. Fragment-only and script hrefs are skipped.
func ExtractLinks(doc *goquery.Document) []Link {
	var links []Link
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if !followable(href) {
			return
		}
		text := collapseSpace(s.Text())
		if text == "" {
			text = href
		}
		links = append(links, Link{
			Index: len(links) + 1,
			Text:  text,
			URL:   href,
		})
	})
	return links
}

func followable(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	lower := strings.ToLower(href)
	return !strings.HasPrefix(lower, "javascript:") && !strings.HasPrefix(lower, "data:")
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
