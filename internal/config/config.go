package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type Config struct {
	// Target settings
	URL     string `mapstructure:"url" validate:"required,url"`
	DocRoot string `mapstructure:"docRoot" validate:"required"`
	Catalog string `mapstructure:"catalog"`

	// HTTP client settings
	HTTPClient     string        `mapstructure:"httpClient" validate:"oneof=gohttp resty"`
	ProbeTimeout   time.Duration `mapstructure:"probeTimeout" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout" validate:"gte=0"`
	MaxRedirects   int           `mapstructure:"maxRedirects" validate:"gte=0"`
	AddHeader      string        `mapstructure:"addHeader"`

	// Selection settings
	Run  []string `mapstructure:"run"`
	Skip []string `mapstructure:"skip"`

	// Output settings
	ProgressBar  bool   `mapstructure:"progressBar"`
	NoColor      bool   `mapstructure:"noColor"`
	ReportFormat string `mapstructure:"reportFormat" validate:"oneof=text json"`
	ReportFile   string `mapstructure:"reportFile"`

	// config.yaml
	HTTPHeaders map[string]string `mapstructure:"headers"`

	// Other settings
	LogLevel string `mapstructure:"logLevel" validate:"omitempty,oneof=panic fatal error warn warning info debug trace"`

	Args []string
}

var validate = validator.New()

// Validate checks the values that came from flags, the config file and the
// environment after they were merged.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.Errorf("invalid value of %q: failed on the %q rule", verrs[0].Field(), verrs[0].Tag())
		}
		return errors.Wrap(err, "couldn't validate config")
	}

	return nil
}
