package db

// GetSummary finalizes the counters of the run. The failure messages keep
// the order in which the failures happened.
func (db *DB) GetSummary() *Summary {
	s := &Summary{
		Passed:   db.passed,
		Failed:   db.failed,
		Failures: make([]string, len(db.failures)),
	}
	copy(s.Failures, db.failures)

	s.PassedPercentage = CalculatePercentage(s.Passed, s.Total())

	for _, g := range db.groups {
		sent := g.passed + g.failed
		s.Groups = append(s.Groups, &SummaryTableRow{
			Group:      g.name,
			Percentage: CalculatePercentage(g.passed, sent),
			Sent:       sent,
			Passed:     g.passed,
			Failed:     g.failed,
		})
	}

	return s
}
