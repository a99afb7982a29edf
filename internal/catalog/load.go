package catalog

import (
	_ "embed"
	"encoding/hex"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

//go:embed default.yaml
var defaultCatalog []byte

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	c, err := Parse(defaultCatalog)
	if err != nil {
		return nil, errors.Wrap(err, "embedded catalog")
	}
	return c, nil
}

// Load reads a catalog from path. An empty path selects the embedded one.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't read catalog")
	}

	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, errors.Wrap(err, "couldn't parse catalog")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Catalog) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return errors.Errorf("invalid value of %q: failed on the %q rule", vErrs[0].Namespace(), vErrs[0].Tag())
		}
		return err
	}

	names := make(map[string]string)
	for _, g := range c.Groups {
		for i := range g.Checks {
			ch := &g.Checks[i]
			switch ch.Kind {
			case KindDynamic:
				if len(ch.Contains) == 0 && len(ch.Headers) == 0 {
					return errors.Errorf("check %q: dynamic check needs contains or headers", ch.DisplayName())
				}
			case KindStatus:
				if len(ch.Codes) == 0 {
					return errors.Errorf("check %q: status check needs codes", ch.DisplayName())
				}
			}

			name := ch.DisplayName()
			if prev, ok := names[name]; ok {
				return errors.Errorf("duplicate check name %q in groups %q and %q", name, prev, g.Name)
			}
			names[name] = g.Name
		}
	}

	return nil
}

// Bytes returns the content the fixture is written with.
func (f *Fixture) Bytes() ([]byte, error) {
	if f.Hex != "" {
		b, err := hex.DecodeString(f.Hex)
		if err != nil {
			return nil, errors.Wrapf(err, "fixture %s", f.Path)
		}
		return b, nil
	}
	return []byte(f.Content), nil
}

// FileMode parses the octal mode of the fixture. Zero means the default.
func (f *Fixture) FileMode() (os.FileMode, error) {
	if f.Mode == "" {
		return 0, nil
	}

	mode, err := strconv.ParseUint(f.Mode, 8, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "fixture %s: invalid mode %q", f.Path, f.Mode)
	}
	return os.FileMode(mode), nil
}
