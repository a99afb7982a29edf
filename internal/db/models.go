package db

type Summary struct {
	Passed   int      `json:"passed" validate:"min=0"`
	Failed   int      `json:"failed" validate:"min=0"`
	Failures []string `json:"failures"`

	PassedPercentage float64 `json:"passed_percentage" validate:"min=0,max=100"`

	Groups []*SummaryTableRow `json:"groups" validate:"dive"`
}

type SummaryTableRow struct {
	Group      string  `json:"group"`
	Percentage float64 `json:"percentage" validate:"min=0,max=100"`
	Sent       int     `json:"sent" validate:"min=0"`
	Passed     int     `json:"passed" validate:"min=0"`
	Failed     int     `json:"failed" validate:"min=0"`
}

// Total is the number of outcomes the summary is built from.
func (s *Summary) Total() int {
	return s.Passed + s.Failed
}

// OK reports whether the run had no failures.
func (s *Summary) OK() bool {
	return s.Failed == 0
}
