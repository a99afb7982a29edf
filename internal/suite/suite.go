// Package suite turns a catalog into fixtures on disk and registered test
// cases.
package suite

import (
	"context"

	"github.com/pkg/errors"

	"github.com/wallarm/httpcheck/internal/catalog"
	"github.com/wallarm/httpcheck/internal/check"
	"github.com/wallarm/httpcheck/internal/fixture"
	"github.com/wallarm/httpcheck/internal/scanner"
)

// CreateFixtures writes every catalog fixture through the manager. Files
// created before a failure stay registered, so the caller's Cleanup still
// removes them.
func CreateFixtures(manager *fixture.Manager, c *catalog.Catalog) error {
	for i := range c.Fixtures {
		f := &c.Fixtures[i]

		content, err := f.Bytes()
		if err != nil {
			return err
		}

		mode, err := f.FileMode()
		if err != nil {
			return err
		}

		var opts []fixture.Option
		if mode != 0 {
			opts = append(opts, fixture.WithMode(mode))
		}

		if _, err = manager.Create(f.Path, content, f.Binary, opts...); err != nil {
			return errors.Wrapf(err, "fixture %s", f.Path)
		}
	}

	return nil
}

// Build registers a test case for every catalog check, in catalog order.
func Build(s *scanner.Scanner, c *catalog.Catalog, checker *check.Checker, docRoot string) error {
	for _, g := range c.Groups {
		for i := range g.Checks {
			ch := g.Checks[i]

			action, err := newAction(ch, checker, docRoot)
			if err != nil {
				return errors.Wrapf(err, "group %q", g.Name)
			}

			s.Register(g.Name, ch.DisplayName(), action)
		}
	}

	return nil
}

func newAction(ch catalog.Check, checker *check.Checker, docRoot string) (scanner.Action, error) {
	switch ch.Kind {
	case catalog.KindStatic:
		return func(ctx context.Context) (check.Outcome, error) {
			// read at run time, fixtures may be written after Build
			artifact := check.LoadArtifact(docRoot, ch.URL, ch.LocalPath(), ch.ContentType)
			return checker.CheckStaticResource(ctx, ch.URL, artifact), nil
		}, nil

	case catalog.KindDynamic:
		return func(ctx context.Context) (check.Outcome, error) {
			return checker.CheckDynamicResource(ctx, ch.URL, ch.Contains, ch.Headers), nil
		}, nil

	case catalog.KindRejected:
		return func(ctx context.Context) (check.Outcome, error) {
			return checker.CheckRejected(ctx, ch.URL, ch.Codes), nil
		}, nil

	case catalog.KindStatus:
		return func(ctx context.Context) (check.Outcome, error) {
			return checker.CheckStatus(ctx, ch.URL, ch.Codes), nil
		}, nil
	}

	return nil, errors.Errorf("unknown check kind %q", ch.Kind)
}
