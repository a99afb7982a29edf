// Package db collects the outcomes of a run. It is owned by the runner and
// is only touched from the goroutine executing the test cases.
package db

import (
	"fmt"

	"github.com/wallarm/httpcheck/internal/check"
)

type groupCounters struct {
	name   string
	passed int
	failed int
}

type DB struct {
	outcomes []check.Outcome
	byName   map[string]int
	groups   []*groupCounters
	groupIdx map[string]*groupCounters

	passed   int
	failed   int
	failures []string

	numberOfTests uint
}

func NewDB(numberOfTests uint) *DB {
	return &DB{
		byName:        make(map[string]int),
		groupIdx:      make(map[string]*groupCounters),
		numberOfTests: numberOfTests,
	}
}

// Record adds the outcome of one executed test case. A name that was already
// recorded replaces the earlier report entry, the counters still see both.
func (db *DB) Record(o check.Outcome) {
	if idx, ok := db.byName[o.Name]; ok {
		db.outcomes[idx] = o
	} else {
		db.byName[o.Name] = len(db.outcomes)
		db.outcomes = append(db.outcomes, o)
	}

	g, ok := db.groupIdx[o.Group]
	if !ok {
		g = &groupCounters{name: o.Group}
		db.groupIdx[o.Group] = g
		db.groups = append(db.groups, g)
	}

	if o.IsPassed() {
		db.passed++
		g.passed++
		return
	}

	db.failed++
	g.failed++
	db.failures = append(db.failures, fmt.Sprintf("%s: %s", o.Name, o.Reason))
}

// Outcomes returns the report entries in the order they were first recorded.
func (db *DB) Outcomes() []check.Outcome {
	outcomes := make([]check.Outcome, len(db.outcomes))
	copy(outcomes, db.outcomes)
	return outcomes
}

// Lookup returns the report entry of the test case with the given name.
func (db *DB) Lookup(name string) (check.Outcome, bool) {
	idx, ok := db.byName[name]
	if !ok {
		return check.Outcome{}, false
	}
	return db.outcomes[idx], true
}

func (db *DB) GetNumberOfAllTestCases() uint {
	return db.numberOfTests
}

func (db *DB) NumberOfRecorded() uint {
	return uint(db.passed + db.failed)
}
