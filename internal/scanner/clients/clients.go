package clients

import (
	"context"

	"github.com/wallarm/httpcheck/internal/config"
	"github.com/wallarm/httpcheck/internal/helpers"
	"github.com/wallarm/httpcheck/internal/scanner/types"
)

// HTTPClient sends a single GET request and returns the fully read response.
// Network-level failures are returned as errors, any HTTP status is a
// response.
type HTTPClient interface {
	Get(ctx context.Context, targetURL string) (types.Response, error)
}

// Headers merges headers from the config file with the one passed via
// --addHeader.
func Headers(cfg *config.Config) map[string]string {
	return helpers.MergeHeaders(cfg.HTTPHeaders, cfg.AddHeader)
}
