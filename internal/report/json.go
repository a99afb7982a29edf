package report

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/wallarm/httpcheck/internal/check"
	"github.com/wallarm/httpcheck/internal/db"
)

// jsonReport represents a data required to render a full report in JSON format.
type jsonReport struct {
	Date     string          `json:"date" validate:"required"`
	URL      string          `json:"url" validate:"required,url"`
	Args     []string        `json:"args" validate:"dive,args"`
	OK       bool            `json:"ok"`
	Summary  *db.Summary     `json:"summary" validate:"required"`
	Outcomes []check.Outcome `json:"outcomes" validate:"dive"`
}

// ExportJSONReport saves the summary and every outcome of the run to
// reportFile.
func ExportJSONReport(
	reportFile string, reportTime time.Time, url string, args []string,
	s *db.Summary, outcomes []check.Outcome,
) error {
	report := jsonReport{
		Date:     reportTime.Format(time.ANSIC),
		URL:      url,
		Args:     args,
		OK:       s.OK(),
		Summary:  s,
		Outcomes: outcomes,
	}

	if err := validateReport(&report); err != nil {
		return err
	}

	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "couldn't export report to JSON")
	}

	if err = os.WriteFile(reportFile, jsonBytes, 0o644); err != nil {
		return errors.Wrap(err, "couldn't write JSON report")
	}

	return nil
}
