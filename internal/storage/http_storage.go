package storage

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"time"

	"go-menu-gallery/pkg/models"
)

const maxAttempts = 3

// ImageProber reads the media type and size of a remote image without downloading it
type ImageProber interface {
	Probe(ctx context.Context, imageURL string) (models.FileDescriptor, error)
}

// HTTPImageProber implements ImageProber with HEAD requests and bounded retries
type HTTPImageProber struct {
	client  *http.Client
	backoff time.Duration
}

// ProberOption customizes an HTTPImageProber
type ProberOption func(*HTTPImageProber)

// WithBackoff sets the base delay between attempts; attempt n waits n*d
func WithBackoff(d time.Duration) ProberOption {
	return func(p *HTTPImageProber) {
		p.backoff = d
	}
}

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) ProberOption {
	return func(p *HTTPImageProber) {
		p.client = c
	}
}

// NewHTTPImageProber creates a prober whose requests give up after timeout
func NewHTTPImageProber(timeout time.Duration, opts ...ProberOption) *HTTPImageProber {
	transport := &http.Transport{
		MaxIdleConns:           10,
		MaxIdleConnsPerHost:    2,
		IdleConnTimeout:        30 * time.Second,
		TLSHandshakeTimeout:    10 * time.Second,
		ResponseHeaderTimeout:  10 * time.Second,
		ExpectContinueTimeout:  1 * time.Second,
		MaxResponseHeaderBytes: 4096,
	}

	p := &HTTPImageProber{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		backoff: time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe issues a HEAD request, falling back to GET when the server refuses HEAD.
// 4xx responses are not retried; network errors and 5xx are retried up to 3 attempts.
func (p *HTTPImageProber) Probe(ctx context.Context, imageURL string) (models.FileDescriptor, error) {
	method := http.MethodHead
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := p.do(ctx, method, imageURL)
		if err != nil {
			if ctx.Err() != nil {
				return models.FileDescriptor{}, ctx.Err()
			}
			lastErr = err
		} else {
			resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusOK:
				return describe(resp), nil
			case resp.StatusCode == http.StatusMethodNotAllowed && method == http.MethodHead:
				// retry immediately with GET; this does not count as a failure
				method = http.MethodGet
				attempt--
				continue
			case resp.StatusCode >= 400 && resp.StatusCode < 500:
				return models.FileDescriptor{}, fmt.Errorf("client error: status code %d", resp.StatusCode)
			default:
				lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
			}
		}

		if attempt < maxAttempts-1 {
			select {
			case <-time.After(time.Duration(attempt+1) * p.backoff):
			case <-ctx.Done():
				return models.FileDescriptor{}, ctx.Err()
			}
		}
	}

	return models.FileDescriptor{}, fmt.Errorf("failed to probe image after %d attempts: %w", maxAttempts, lastErr)
}

func (p *HTTPImageProber) do(ctx context.Context, method, imageURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	req.Header.Set("Accept", "image/jpeg, image/png, image/webp, image/gif, */*")
	req.Header.Set("User-Agent", "Go-Menu-Gallery/1.0")
	return p.client.Do(req)
}

func describe(resp *http.Response) models.FileDescriptor {
	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}
	return models.FileDescriptor{
		Name:        resp.Request.URL.Path,
		ContentType: contentType,
		Size:        resp.ContentLength,
	}
}
