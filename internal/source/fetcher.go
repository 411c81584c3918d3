// Package source fetches external reference documents so their text can be
// used as verification context. Fetching is polite: robots.txt is honored
// and requests are rate limited per host.
package source

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/util"
	"github.com/ppiankov/credence/internal/worker"
)

// Fetcher downloads external sources referenced by an evaluation context
// and fills in their Content with the page's visible text.
type Fetcher struct {
	client    *http.Client
	robots    *util.RobotsChecker
	limiter   *worker.Limiter
	userAgent string
	maxBody   int64
}

// NewFetcher builds a Fetcher from HTTP and rate-limit configuration.
func NewFetcher(httpCfg model.HTTPConfig, rateCfg model.RateLimitConfig) *Fetcher {
	transport := &http.Transport{
		Proxy: util.ProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy),
	}
	if httpCfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	timeout := httpCfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxBody := httpCfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 2 << 20
	}

	return &Fetcher{
		client:    &http.Client{Timeout: timeout, Transport: transport},
		robots:    util.NewRobotsChecker(httpCfg.UserAgent, timeout),
		limiter:   worker.NewLimiter(rateCfg.RequestsPerSecond, rateCfg.BurstSize),
		userAgent: httpCfg.UserAgent,
		maxBody:   maxBody,
	}
}

// Hydrate fetches every source in the context that has a URL but no
// content yet. Failures are reported but never fatal: a source that
// cannot be fetched simply stays empty.
func (f *Fetcher) Hydrate(ctx context.Context, ectx *model.Context) []error {
	var errs []error
	for i := range ectx.ExternalSources {
		src := &ectx.ExternalSources[i]
		if src.URL == "" || src.Content != "" {
			continue
		}
		text, err := f.Fetch(ctx, src.URL)
		if err != nil {
			errs = append(errs, fmt.Errorf("fetch %s: %w", src.URL, err))
			continue
		}
		src.Content = text
	}
	return errs
}

// Fetch downloads a single URL and returns its visible text.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", fmt.Errorf("disallowed by robots.txt")
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, f.maxBody)
	return VisibleText(body)
}

// VisibleText parses HTML and returns its rendered text with scripts,
// styles and markup stripped.
func VisibleText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				sb.WriteString(text)
				sb.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.TrimSpace(sb.String()), nil
}
