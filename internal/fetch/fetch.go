// Package fetch retrieves remote documents into the local download cache so
// they can be read like any other file.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"pdfsim/internal/compare"
	"pdfsim/internal/logging"
	"pdfsim/internal/workspace"
)

var ErrDownload = errors.New("download failed")

type Options struct {
	Timeout    time.Duration
	RetryCount int
	UserAgent  string
}

type Client struct {
	http     *resty.Client
	cacheDir string
	logger   *slog.Logger
}

func New(cacheDir string, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "pdfsim"
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(250 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second)
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() >= 500
	})

	return &Client{
		http:     client,
		cacheDir: cacheDir,
		logger:   logger.With("component", "fetch"),
	}
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	u, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Resolve returns a local path for location. Local paths are returned
// unchanged; URLs are downloaded once and served from the cache afterwards.
func (c *Client) Resolve(ctx context.Context, location string) (string, error) {
	if !IsRemote(location) {
		return location, nil
	}
	location = strings.TrimSpace(location)

	target := filepath.Join(c.cacheDir, workspace.CacheKey(location)+extensionOf(location))
	if info, err := os.Stat(target); err == nil && info.Size() > 0 {
		c.logger.Debug("download cache hit", "url", location, "path", target)
		return target, nil
	}

	resp, err := c.http.R().SetContext(ctx).Get(location)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDownload, location, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: %s: status %s", ErrDownload, location, resp.Status())
	}

	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.cacheDir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(resp.Body()); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close download: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("store download: %w", err)
	}

	c.logger.Info("document downloaded", "url", location, "path", target, "bytes", len(resp.Body()))
	return target, nil
}

// Provider downloads a remote location only when it is opened, so a
// comparison that stops on an unreadable first document never fetches the
// second.
type Provider struct {
	client *Client
	next   compare.Provider
}

// Provider wraps next so that Open accepts URLs as well as local paths.
func (c *Client) Provider(next compare.Provider) *Provider {
	return &Provider{client: c, next: next}
}

func (p *Provider) Open(ctx context.Context, location string) (compare.Document, error) {
	path, err := p.client.Resolve(ctx, location)
	if err != nil {
		return nil, err
	}
	return p.next.Open(ctx, path)
}

// extensionOf keeps the URL's file extension so the provider can pick a
// parser; URLs without one are assumed to be PDFs.
func extensionOf(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return ".pdf"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".pdf", ".docx", ".txt", ".text":
		return ext
	default:
		return ".pdf"
	}
}
