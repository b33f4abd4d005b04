package fetch

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

// ErrFetch marks any failure to obtain the source document: network errors,
// unsupported schemes, and terminal non-2xx statuses. Callers map it to a
// client-facing failure since the pipeline cannot proceed without the page.
var ErrFetch = errors.New("fetch failed")

// StatusError reports a terminal non-success response from the source site.
type StatusError struct {
    URL    string
    Status int
}

func (e *StatusError) Error() string {
    return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *StatusError) Unwrap() error { return ErrFetch }

// DefaultUserAgent mimics a desktop browser; Wikipedia serves reduced markup
// to unidentified clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Client wraps http.Client with a user agent, per-request timeout, and
// limited retry on transient errors.
type Client struct {
    HTTPClient *http.Client
    UserAgent  string
    // MaxAttempts includes the initial attempt. Minimum 1.
    MaxAttempts int
    // PerRequestTimeout bounds each request.
    PerRequestTimeout time.Duration
}

// Get issues a GET with context and bounded retry, returning the response
// body. 5xx statuses and deadline expiry are retried; other failures are
// terminal.
func (c *Client) Get(ctx context.Context, pageURL string) ([]byte, error) {
    attempts := c.MaxAttempts
    if attempts <= 0 {
        attempts = 1
    }
    var lastErr error
    for i := 0; i < attempts; i++ {
        body, err := c.tryOnce(ctx, pageURL)
        if err == nil {
            return body, nil
        }
        if !isTransient(err) || i == attempts-1 {
            return nil, err
        }
        lastErr = err
        time.Sleep(time.Duration(i+1) * 200 * time.Millisecond)
    }
    if lastErr == nil {
        lastErr = fmt.Errorf("%w: unknown error", ErrFetch)
    }
    return nil, lastErr
}

func (c *Client) tryOnce(ctx context.Context, pageURL string) ([]byte, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
    if err != nil {
        return nil, fmt.Errorf("%w: new request: %v", ErrFetch, err)
    }
    if req.URL == nil || !isHTTPScheme(req.URL) {
        return nil, fmt.Errorf("%w: unsupported URL scheme in %q", ErrFetch, pageURL)
    }
    ua := c.UserAgent
    if ua == "" {
        ua = DefaultUserAgent
    }
    req.Header.Set("User-Agent", ua)

    if c.PerRequestTimeout > 0 {
        var cancel context.CancelFunc
        ctx, cancel = context.WithTimeout(req.Context(), c.PerRequestTimeout)
        defer cancel()
        req = req.WithContext(ctx)
    }

    httpClient := c.HTTPClient
    if httpClient == nil {
        httpClient = &http.Client{Timeout: c.PerRequestTimeout}
    }
    resp, err := httpClient.Do(req)
    if err != nil {
        return nil, fmt.Errorf("%w: %v", ErrFetch, err)
    }
    defer resp.Body.Close()

    if resp.StatusCode >= 500 && resp.StatusCode <= 599 {
        return nil, fmt.Errorf("server error: %d: %w", resp.StatusCode, ErrFetch)
    }
    if resp.StatusCode < 200 || resp.StatusCode > 299 {
        return nil, &StatusError{URL: pageURL, Status: resp.StatusCode}
    }
    b, err := io.ReadAll(resp.Body)
    if err != nil {
        return nil, fmt.Errorf("%w: read body: %v", ErrFetch, err)
    }
    return b, nil
}

func isTransient(err error) bool {
    if errors.Is(err, context.DeadlineExceeded) {
        return true
    }
    return strings.Contains(err.Error(), "server error:")
}

func isHTTPScheme(u *url.URL) bool {
    if u == nil {
        return false
    }
    scheme := strings.ToLower(u.Scheme)
    return scheme == "http" || scheme == "https"
}
