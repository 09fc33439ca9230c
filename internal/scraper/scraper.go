package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/geoquiz/backend/internal/domain/dataset"
)

// Layout of the capitals table: each row is EntrySize cells.
const (
	EntrySize     = 3
	CapitalColumn = 0
	CountryColumn = 2
)

const userAgent = "geoquiz/1.0 (capital and flag quiz)"

var ErrFlagNotFound = errors.New("flag image not found")

// StatusError is returned when a document fetch answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

type Config struct {
	CapitalsURL    string        // page listing every capital
	ArticleBaseURL string        // country articles live at ArticleBaseURL + country
	Timeout        time.Duration // per request
}

// Client fetches the capitals table and flag images.
type Client struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// ============================================================================
// Capitals
// ============================================================================

// FetchEntries downloads the capitals document and reads its table cells
// in groups of EntrySize.
func (c *Client) FetchEntries(ctx context.Context) ([]dataset.Entry, error) {
	doc, err := c.fetchDocument(ctx, c.cfg.CapitalsURL)
	if err != nil {
		return nil, err
	}

	cells := doc.Find("td").Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})

	if rest := len(cells) % EntrySize; rest != 0 {
		c.logger.Warn("ignoring incomplete trailing table row", "cells", rest)
	}

	entries := make([]dataset.Entry, 0, len(cells)/EntrySize)
	for i := 0; i+EntrySize <= len(cells); i += EntrySize {
		entries = append(entries, dataset.Entry{
			Capital: cells[i+CapitalColumn],
			Country: cells[i+CountryColumn],
		})
	}

	c.logger.Info("parsed capitals document", "url", c.cfg.CapitalsURL, "entries", len(entries))
	return entries, nil
}

// ============================================================================
// Flags
// ============================================================================

// FetchFlagURL finds the flag thumbnail in the country article and returns
// the URL of its larger rendition.
func (c *Client) FetchFlagURL(ctx context.Context, country string) (string, error) {
	articleURL := c.cfg.ArticleBaseURL + url.PathEscape(country)

	doc, err := c.fetchDocument(ctx, articleURL)
	if err != nil {
		return "", err
	}

	src, ok := doc.Find("img.thumbborder").First().Attr("src")
	if !ok || src == "" {
		return "", fmt.Errorf("%w: %s", ErrFlagNotFound, articleURL)
	}

	return resolveFlagURL(articleURL, src)
}

func resolveFlagURL(articleURL, src string) (string, error) {
	base, err := url.Parse(articleURL)
	if err != nil {
		return "", fmt.Errorf("parse article url: %w", err)
	}
	ref, err := url.Parse(strings.ReplaceAll(src, "125px", "250px"))
	if err != nil {
		return "", fmt.Errorf("parse image src %q: %w", src, err)
	}

	// Protocol-relative sources inherit the article's scheme.
	return base.ResolveReference(ref).String(), nil
}

// Download writes the body at rawURL to dst. The file appears under dst only
// once it is complete.
func (c *Client) Download(ctx context.Context, rawURL, dst string) error {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dst)
}

// ============================================================================
// HTTP
// ============================================================================

func (c *Client) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	c.logger.Debug("fetched", "url", rawURL, "status", resp.StatusCode)
	return resp, nil
}
