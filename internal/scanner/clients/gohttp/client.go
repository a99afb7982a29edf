package gohttp

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/wallarm/httpcheck/internal/config"
	"github.com/wallarm/httpcheck/internal/scanner/clients"
	"github.com/wallarm/httpcheck/internal/scanner/types"
)

const userAgent = "httpcheck"

var _ clients.HTTPClient = (*Client)(nil)

type Client struct {
	client     *http.Client
	headers    map[string]string
	hostHeader string
}

func NewClient(cfg *config.Config) (*Client, error) {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		// bodies and Content-Length must reach the checks exactly as sent
		DisableCompression: true,
		IdleConnTimeout:    30 * time.Second,
		MaxIdleConns:       2,
	}

	client := &http.Client{
		Transport:     tr,
		CheckRedirect: redirectFunc(cfg.MaxRedirects),
		Timeout:       cfg.RequestTimeout,
	}

	configuredHeaders := clients.Headers(cfg)

	return &Client{
		client:     client,
		headers:    configuredHeaders,
		hostHeader: configuredHeaders["Host"],
	}, nil
}

func redirectFunc(maxRedirects int) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		// if maxRedirects is equal to 0 then tell the HTTP client to use
		// the first HTTP response (disable following redirects)
		if maxRedirects == 0 {
			return http.ErrUseLastResponse
		}

		if len(via) > maxRedirects {
			return errors.New("max redirect number exceeded")
		}

		return nil
	}
}

func (c *Client) Get(ctx context.Context, targetURL string) (types.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't prepare request")
	}

	req.Header.Set("User-Agent", userAgent)
	for header, value := range c.headers {
		req.Header.Set(header, value)
	}
	req.Host = c.hostHeader

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "sending http request")
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	return types.NewResponseMeta(resp, bodyBytes), nil
}
