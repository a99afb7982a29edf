// Package check compares HTTP responses of the server under test with what is
// expected of them. Every check returns an Outcome with a single reason: the
// first failing step decides it.
package check

import (
	"context"

	"github.com/wallarm/httpcheck/internal/helpers"
	"github.com/wallarm/httpcheck/internal/scanner/clients"
	"github.com/wallarm/httpcheck/internal/scanner/types"
)

// Headers every static response must carry. Values are not checked.
var requiredStaticHeaders = []string{"Server", "Date", "Connection"}

// HeaderExpectation is a response header a dynamic resource must send. A nil
// Value only requires the header to be present, a non-nil one must match
// exactly, empty string included.
type HeaderExpectation struct {
	Name  string  `yaml:"name" validate:"required"`
	Value *string `yaml:"value"`
}

type Checker struct {
	client  clients.HTTPClient
	baseURL string
}

func NewChecker(client clients.HTTPClient, baseURL string) *Checker {
	return &Checker{
		client:  client,
		baseURL: baseURL,
	}
}

func (c *Checker) get(ctx context.Context, urlPath string) (types.Response, error) {
	return c.client.Get(ctx, helpers.JoinURLPath(c.baseURL, urlPath))
}

// CheckStaticResource fetches urlPath and compares it to the artifact.
func (c *Checker) CheckStaticResource(ctx context.Context, urlPath string, artifact Artifact) Outcome {
	resp, err := c.get(ctx, urlPath)
	if err != nil {
		return requestFailed(err)
	}

	return EvaluateStatic(resp, artifact)
}

// CheckDynamicResource fetches urlPath, typically a CGI script, and looks for
// the required headers and body substrings.
func (c *Checker) CheckDynamicResource(
	ctx context.Context,
	urlPath string,
	requiredSubstrings []string,
	requiredHeaders []HeaderExpectation,
) Outcome {
	resp, err := c.get(ctx, urlPath)
	if err != nil {
		return requestFailed(err)
	}

	return EvaluateDynamic(resp, requiredSubstrings, requiredHeaders)
}

// CheckRejected expects the server to refuse urlPath. Any non-2xx status, or
// an actively rejected connection, passes. When allowedCodes is not empty the
// status must also be one of them.
func (c *Checker) CheckRejected(ctx context.Context, urlPath string, allowedCodes []int) Outcome {
	resp, err := c.get(ctx, urlPath)
	if err != nil {
		if IsConnectionRejected(err) {
			return PassedWithNote("connection rejected")
		}
		return requestFailed(err)
	}

	return EvaluateRejected(resp, allowedCodes)
}

// CheckStatus expects one of allowedCodes for urlPath.
func (c *Checker) CheckStatus(ctx context.Context, urlPath string, allowedCodes []int) Outcome {
	resp, err := c.get(ctx, urlPath)
	if err != nil {
		return requestFailed(err)
	}

	return EvaluateStatus(resp, allowedCodes)
}

func requestFailed(err error) Outcome {
	return Failed(ReasonNetwork, "request failed: %v", err)
}
