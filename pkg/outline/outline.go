// Package outline turns a country name into a Markdown outline of the
// headings found on its Wikipedia article.
package outline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/dtnitsch/wiki-outline/models"
	"github.com/dtnitsch/wiki-outline/pkg/fetcher"
	"github.com/dtnitsch/wiki-outline/pkg/parser"
	"github.com/dustin/go-humanize"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const previewHeadings = 5

// PageFetcher retrieves the raw body of a page.
type PageFetcher interface {
	GetHtmlBytes(ctx context.Context, url string) ([]byte, int, error)
}

type Service struct {
	baseURL string
	fetcher PageFetcher
	parser  *parser.Parser
	logger  *slog.Logger
}

func NewService(baseURL string, f PageFetcher, logger *slog.Logger) *Service {
	return &Service{
		baseURL: baseURL,
		fetcher: f,
		parser:  &parser.Parser{},
		logger:  logger,
	}
}

// GetOutline fetches the article for req.Country and returns its headings as
// Markdown. It either returns the full outline or an error, never a partial
// result. Errors can be classified with StatusCode and Detail.
func (s *Service) GetOutline(ctx context.Context, req models.OutlineRequest) (*models.OutlineResponse, error) {
	headings, err := s.GetHeadings(ctx, req)
	if err != nil {
		return nil, err
	}

	md := FormatMarkdown(headings)
	s.logger.Debug("Markdown outline built", "length", len(md))
	return &models.OutlineResponse{Outline: md}, nil
}

// GetHeadings runs every step of GetOutline except the Markdown rendering.
func (s *Service) GetHeadings(ctx context.Context, req models.OutlineRequest) ([]models.Heading, error) {
	if err := validation.Validate(req.Country, validation.Required); err != nil {
		return nil, validationError(err, "Missing 'country' query parameter")
	}
	scope := req.Scope.OrDefault()
	if err := validation.Validate(scope, validation.In(models.ScopeDocument, models.ScopeArticle)); err != nil {
		return nil, validationError(err, "Unknown scope: "+string(req.Scope))
	}
	logger := s.logger.With("country", req.Country)
	logger.Debug("Requested country", "scope", scope)

	wikiURL := BuildArticleURL(s.baseURL, req.Country)
	logger.Debug("Wikipedia URL", "url", wikiURL)

	logger.Debug("Sending HTTP request")
	body, status, err := s.fetcher.GetHtmlBytes(ctx, wikiURL)
	var statusErr *fetcher.StatusError
	switch {
	case errors.As(err, &statusErr):
		logger.Warn("Page not found", "url", wikiURL, "status", statusErr.StatusCode)
		return nil, notFoundError(err, req.Country)
	case err != nil:
		logger.Error("Network error", "url", wikiURL, "error", err)
		return nil, networkError(err)
	}
	logger.Debug("HTTP status", "status", status)

	var doc *goquery.Document
	if scope == models.ScopeArticle {
		doc, err = s.parser.ParseArticle(wikiURL, body)
	} else {
		doc, err = s.parser.Parse(body)
	}
	if err != nil {
		logger.Error("HTML parsing failed", "error", err)
		return nil, parseError(err)
	}
	logger.Debug("HTML parsed", "bytes", len(body), "size", humanize.Bytes(uint64(len(body))))

	headings := parser.Headings(doc)
	logger.Debug("Found headings", "count", parser.CountHeadings(doc), "non_empty", len(headings))
	for i, h := range headings {
		if i >= previewHeadings {
			break
		}
		logger.Debug("Heading", "markdown", h.Markdown())
	}

	return headings, nil
}
