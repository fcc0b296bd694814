// Package scraper достает название, картинку и цену со страницы товара
// (Open Graph, product meta, JSON-LD). Работает по принципу best-effort.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrInvalidURL = errors.New("product url must be an absolute http(s) url")
	ErrNoMetadata = errors.New("product page has no usable metadata")
)

// StatusError - апстрим ответил не 2xx
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("product page returned status %d", e.StatusCode)
}

// Product - то, что удалось вытащить со страницы
type Product struct {
	URL      string
	Title    string
	ImageURL string
	Price    *float64
	Currency string
}

type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 2 << 20
	}
	return &Fetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBodyBytes,
	}
}

// Fetch скачивает страницу и разбирает метаданные
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Product, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch product page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	product, err := Parse(io.LimitReader(resp.Body, f.maxBody), resp.Request.URL)
	if err != nil {
		return nil, err
	}
	product.URL = u.String()
	return product, nil
}
