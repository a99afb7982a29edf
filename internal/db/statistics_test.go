package db

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/wallarm/httpcheck/internal/check"
)

var groups = []string{"HTML Files", "CGI Scripts", "Security"}

// outcomesFromSeeds turns generated integers into outcomes: the lowest bit
// is the verdict, the rest picks the group.
func outcomesFromSeeds(seeds []int, uniqueNames bool) []check.Outcome {
	outcomes := make([]check.Outcome, 0, len(seeds))

	for i, seed := range seeds {
		name := fmt.Sprintf("case-%d", i)
		if !uniqueNames {
			name = fmt.Sprintf("case-%d", seed%3)
		}

		o := check.Passed()
		if seed&1 == 1 {
			o = check.Failed(check.ReasonStatus, "expected 200, got %d", 400+seed)
		}
		o.Name = name
		o.Group = groups[(seed>>1)%len(groups)]

		outcomes = append(outcomes, o)
	}

	return outcomes
}

func newFilledDB(outcomes []check.Outcome) *DB {
	db := NewDB(uint(len(outcomes)))
	for _, o := range outcomes {
		db.Record(o)
	}
	return db
}

func TestStatistics(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000

	properties := gopter.NewProperties(parameters)

	seeds := gen.SliceOf(gen.IntRange(0, 63))

	properties.Property("testPropertyCountsMatchOutcomes", prop.ForAll(
		func(seeds []int) bool {
			return testPropertyCountsMatchOutcomes(outcomesFromSeeds(seeds, true))
		},
		seeds))

	properties.Property("testPropertyOKIffNoFailures", prop.ForAll(
		func(seeds []int) bool {
			return testPropertyOKIffNoFailures(outcomesFromSeeds(seeds, true))
		},
		seeds))

	properties.Property("testPropertyOrderPreserved", prop.ForAll(
		func(seeds []int) bool {
			return testPropertyOrderPreserved(outcomesFromSeeds(seeds, true))
		},
		seeds))

	properties.Property("testPropertyDuplicateNamesOverwrite", prop.ForAll(
		func(seeds []int) bool {
			return testPropertyDuplicateNamesOverwrite(outcomesFromSeeds(seeds, false))
		},
		seeds))

	properties.Property("testPropertyOnlyPositiveNumberValues", prop.ForAll(
		func(seeds []int) bool {
			return testPropertyOnlyPositiveNumberValues(outcomesFromSeeds(seeds, false))
		},
		seeds))

	properties.TestingRun(t)
}

func testPropertyCountsMatchOutcomes(outcomes []check.Outcome) bool {
	s := newFilledDB(outcomes).GetSummary()

	failed := 0
	for _, o := range outcomes {
		if !o.IsPassed() {
			failed++
		}
	}

	if s.Total() != len(outcomes) || s.Failed != failed || len(s.Failures) != failed {
		return false
	}

	sent := 0
	for _, row := range s.Groups {
		if row.Sent != row.Passed+row.Failed {
			return false
		}
		sent += row.Sent
	}

	return sent == len(outcomes)
}

func testPropertyOKIffNoFailures(outcomes []check.Outcome) bool {
	s := newFilledDB(outcomes).GetSummary()
	return s.OK() == (s.Failed == 0)
}

func testPropertyOrderPreserved(outcomes []check.Outcome) bool {
	recorded := newFilledDB(outcomes).Outcomes()
	if len(recorded) != len(outcomes) {
		return false
	}

	for i := range outcomes {
		if recorded[i] != outcomes[i] {
			return false
		}
	}

	return true
}

func testPropertyDuplicateNamesOverwrite(outcomes []check.Outcome) bool {
	db := newFilledDB(outcomes)

	last := make(map[string]check.Outcome)
	for _, o := range outcomes {
		last[o.Name] = o
	}

	if len(db.Outcomes()) != len(last) {
		return false
	}

	for name, want := range last {
		got, ok := db.Lookup(name)
		if !ok || got != want {
			return false
		}
	}

	return db.GetSummary().Total() == len(outcomes)
}

func testPropertyOnlyPositiveNumberValues(outcomes []check.Outcome) bool {
	s := newFilledDB(outcomes).GetSummary()

	if s.Passed < 0 || s.Failed < 0 || s.PassedPercentage < 0 || s.PassedPercentage > 100 {
		return false
	}

	for _, row := range s.Groups {
		if row.Percentage < 0 || row.Percentage > 100 || row.Sent < 0 {
			return false
		}
	}

	return true
}

func TestSummaryFailures(t *testing.T) {
	pass := check.Passed()
	pass.Name = "404 Error for non-existent file"

	fail := check.Failed(check.ReasonContentLength, "wrong Content-Length: expected 20, got 19")
	fail.Name = "File: /static/text/readme.txt"

	s := newFilledDB([]check.Outcome{pass, fail}).GetSummary()

	if s.OK() {
		t.Errorf("summary with a failure must not be OK")
	}
	if len(s.Failures) != 1 || s.Failures[0] != "File: /static/text/readme.txt: wrong Content-Length: expected 20, got 19" {
		t.Errorf("unexpected failures: %v", s.Failures)
	}
	if s.PassedPercentage != 50 {
		t.Errorf("unexpected percentage: %v", s.PassedPercentage)
	}
}

func TestNumberOfRecorded(t *testing.T) {
	first := check.Passed()
	first.Name = "Root directory request"

	again := check.Failed(check.ReasonStatus, "expected 200, got 500")
	again.Name = "Root directory request"

	db := newFilledDB([]check.Outcome{first, again})

	if got := db.NumberOfRecorded(); got != 2 {
		t.Errorf("NumberOfRecorded() = %d, want 2", got)
	}
	if got := len(db.Outcomes()); got != 1 {
		t.Errorf("len(Outcomes()) = %d, want 1", got)
	}
}
