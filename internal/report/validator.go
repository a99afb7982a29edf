package report

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/wallarm/httpcheck/internal/check"
)

var argsRegex = regexp.MustCompile(`^--[a-zA-Z]+(=.+)?$`)

var customValidators = map[string]validator.Func{
	"args": validateArgs,
}

func validateArgs(fl validator.FieldLevel) bool {
	return argsRegex.MatchString(fl.Field().String())
}

// validateOutcome enforces that a reason is given iff the check failed.
func validateOutcome(sl validator.StructLevel) {
	o := sl.Current().Interface().(check.Outcome)

	switch o.Verdict {
	case check.Pass:
		if o.Reason != "" {
			sl.ReportError(o.Reason, "Reason", "Reason", "empty_on_pass", "")
		}
	case check.Fail:
		if o.Reason == "" {
			sl.ReportError(o.Reason, "Reason", "Reason", "required_on_fail", "")
		}
	default:
		sl.ReportError(o.Verdict, "Verdict", "Verdict", "verdict", "")
	}

	if o.Name == "" {
		sl.ReportError(o.Name, "Name", "Name", "required", "")
	}
}

func newValidator() (*validator.Validate, error) {
	validate := validator.New()

	for tag, fn := range customValidators {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, errors.Wrap(err, "couldn't register validation")
		}
	}
	validate.RegisterStructValidation(validateOutcome, check.Outcome{})

	return validate, nil
}

// validateReport checks the report data before it is written.
func validateReport(report *jsonReport) error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if err = validate.Struct(report); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return errors.Errorf("invalid report: %q failed on the %q rule", vErrs[0].Namespace(), vErrs[0].Tag())
		}
		return errors.Wrap(err, "couldn't validate report")
	}

	return nil
}
