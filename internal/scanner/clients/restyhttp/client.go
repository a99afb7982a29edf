package restyhttp

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/wallarm/httpcheck/internal/config"
	"github.com/wallarm/httpcheck/internal/scanner/clients"
	"github.com/wallarm/httpcheck/internal/scanner/types"
)

var _ clients.HTTPClient = (*Client)(nil)

// Client sends requests with go-resty. Retries stay disabled: a failed
// request is reported once.
type Client struct {
	client *resty.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	c := resty.New().
		SetTransport(&http.Transport{
			Proxy:              http.ProxyFromEnvironment,
			DisableCompression: true,
			IdleConnTimeout:    30 * time.Second,
			MaxIdleConns:       2,
		}).
		SetRetryCount(0).
		SetHeader("User-Agent", "httpcheck").
		SetHeaders(clients.Headers(cfg))

	if cfg.RequestTimeout > 0 {
		c.SetTimeout(cfg.RequestTimeout)
	}

	if cfg.MaxRedirects == 0 {
		// hand back the redirect response itself, like the gohttp client
		c.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	} else {
		c.SetRedirectPolicy(resty.FlexibleRedirectPolicy(cfg.MaxRedirects))
	}

	return &Client{client: c}, nil
}

func (c *Client) Get(ctx context.Context, targetURL string) (types.Response, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(targetURL)
	if err != nil {
		return nil, errors.Wrap(err, "sending http request")
	}

	return types.NewResponseMeta(resp.RawResponse, resp.Body()), nil
}
