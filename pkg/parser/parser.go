package parser

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/wiki-outline/models"
	"github.com/go-shiori/go-readability"
)

const headingSelector = "h1,h2,h3,h4,h5,h6"

var (
	ErrEmptyBody  = errors.New("response body is empty")
	ErrNotTextual = errors.New("response body is not text")
)

type Parser struct{}

// Parse turns a raw response body into a goquery document. Bodies that are
// empty or sniff as binary are rejected before reaching the HTML parser,
// which would otherwise accept almost anything.
func (p *Parser) Parse(body []byte) (*goquery.Document, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}
	if ct := http.DetectContentType(body); !strings.HasPrefix(ct, "text/") {
		return nil, fmt.Errorf("%w: detected %s", ErrNotTextual, ct)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ParseArticle uses go-readability to find the main article content and
// returns it as its own document, so heading extraction skips navigation,
// sidebars and footers.
func (p *Parser) ParseArticle(rawURL string, body []byte) (*goquery.Document, error) {
	if _, err := p.Parse(body); err != nil {
		return nil, err
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}

	rp := readability.NewParser()
	article, err := rp.Parse(bytes.NewReader(body), parsedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract article: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article HTML: %w", err)
	}
	return doc, nil
}

// Headings returns every H1-H6 element in document order. Level comes from
// the tag name, never from nesting depth. Headings whose text trims to
// nothing are dropped.
func Headings(doc *goquery.Document) []models.Heading {
	var headings []models.Heading
	doc.Find(headingSelector).Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		headings = append(headings, models.Heading{
			Level: headingLevel(goquery.NodeName(s)),
			Text:  text,
		})
	})
	return headings
}

// CountHeadings reports how many heading elements the document holds,
// including the empty ones Headings drops.
func CountHeadings(doc *goquery.Document) int {
	return doc.Find(headingSelector).Length()
}

func headingLevel(tag string) int {
	return int(tag[1] - '0')
}
