// Package catalog describes the checks run against the server under test and
// the fixtures they need. The default catalog is embedded in the binary.
package catalog

import (
	"net/url"
	"strings"

	"github.com/wallarm/httpcheck/internal/check"
)

type Kind string

const (
	KindStatic   Kind = "static"
	KindDynamic  Kind = "dynamic"
	KindRejected Kind = "rejected"
	KindStatus   Kind = "status"
)

type Catalog struct {
	Name     string    `yaml:"name"`
	Fixtures []Fixture `yaml:"fixtures" validate:"dive"`
	Groups   []Group   `yaml:"groups" validate:"required,min=1,dive"`
}

// Fixture is a file created under the document root before the checks run
// and removed afterwards. Content is taken from Hex when it is set.
type Fixture struct {
	Path    string `yaml:"path" validate:"required"`
	Content string `yaml:"content"`
	Hex     string `yaml:"hex" validate:"omitempty,hexadecimal"`
	Binary  bool   `yaml:"binary"`
	Mode    string `yaml:"mode" validate:"omitempty,numeric,len=4"`
}

type Group struct {
	Name   string  `yaml:"name" validate:"required"`
	Checks []Check `yaml:"checks" validate:"required,min=1,dive"`
}

type Check struct {
	Kind        Kind                      `yaml:"kind" validate:"required,oneof=static dynamic rejected status"`
	Name        string                    `yaml:"name"`
	URL         string                    `yaml:"url" validate:"required,startswith=/"`
	File        string                    `yaml:"file"`
	ContentType string                    `yaml:"contentType"`
	Contains    []string                  `yaml:"contains"`
	Headers     []check.HeaderExpectation `yaml:"headers" validate:"dive"`
	Codes       []int                     `yaml:"codes" validate:"dive,gte=100,lte=599"`
}

// DisplayName is the name the check is reported under.
func (c *Check) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}

	switch c.Kind {
	case KindStatic:
		return "File: " + c.URL
	case KindDynamic:
		return "CGI: " + c.URL
	case KindRejected:
		return "Rejected: " + c.URL
	default:
		return "Status: " + c.URL
	}
}

// LocalPath returns the file under the document root that backs a static
// check: File if set, otherwise the unescaped URL path.
func (c *Check) LocalPath() string {
	if c.File != "" {
		return strings.TrimPrefix(c.File, "/")
	}

	p := c.URL
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if unescaped, err := url.PathUnescape(p); err == nil {
		p = unescaped
	}

	return strings.TrimPrefix(p, "/")
}

// NumberOfChecks returns the number of checks across all groups.
func (c *Catalog) NumberOfChecks() int {
	n := 0
	for _, g := range c.Groups {
		n += len(g.Checks)
	}
	return n
}
