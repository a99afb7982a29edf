package scanner

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Filter selects test cases by their "group/name" identifier. A case runs if
// it matches any run pattern (or none are given) and no skip pattern.
type Filter struct {
	run  []*regexp.Regexp
	skip []*regexp.Regexp
}

func NewFilter(run []string, skip []string) (*Filter, error) {
	runRegexps, err := compilePatterns(run)
	if err != nil {
		return nil, errors.Wrap(err, "bad --run regexp")
	}

	skipRegexps, err := compilePatterns(skip)
	if err != nil {
		return nil, errors.Wrap(err, "bad --skip regexp")
	}

	return &Filter{run: runRegexps, skip: skipRegexps}, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	regexps := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		regexps = append(regexps, re)
	}
	return regexps, nil
}

func (f *Filter) Match(id string) bool {
	if len(f.run) > 0 && !anyMatch(f.run, id) {
		return false
	}
	return !anyMatch(f.skip, id)
}

// Description says which tests are left out, or "" when all of them run.
func (f *Filter) Description() string {
	var parts []string
	if len(f.run) > 0 {
		parts = append(parts, "skip any not matching "+quotePatterns(f.run))
	}
	if len(f.skip) > 0 {
		parts = append(parts, "skip any matching "+quotePatterns(f.skip))
	}
	return strings.Join(parts, "; ")
}

func anyMatch(regexps []*regexp.Regexp, id string) bool {
	for _, re := range regexps {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}

func quotePatterns(regexps []*regexp.Regexp) string {
	quoted := make([]string, 0, len(regexps))
	for _, re := range regexps {
		quoted = append(quoted, `"`+re.String()+`"`)
	}
	return strings.Join(quoted, " or ")
}
