package golden

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrMismatch is returned by Report.Err when any outcome differs from its
// expected value.
var ErrMismatch = errors.New("golden mismatch")

// Report summarizes a set of outcomes.
type Report struct {
	Total      int
	Passed     int
	Mismatches []Outcome
}

// NewReport tallies outcomes. Mismatches are sorted by case name.
func NewReport(outcomes []Outcome) Report {
	r := Report{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Match() {
			r.Passed++
			continue
		}
		r.Mismatches = append(r.Mismatches, o)
	}
	sort.Slice(r.Mismatches, func(i, j int) bool {
		return r.Mismatches[i].Case.Name < r.Mismatches[j].Case.Name
	})
	return r
}

// Err returns ErrMismatch wrapped with the failing case names, or nil.
func (r Report) Err() error {
	if len(r.Mismatches) == 0 {
		return nil
	}
	names := make([]string, len(r.Mismatches))
	for i, o := range r.Mismatches {
		names[i] = o.Case.Name
	}
	return fmt.Errorf("%w: %d/%d cases (%s)", ErrMismatch, len(r.Mismatches), r.Total, strings.Join(names, ", "))
}

// Update returns a copy of set with every Want replaced by the value
// observed in outcomes.
func Update(set FixtureSet, outcomes []Outcome) FixtureSet {
	got := make(map[string]int, len(outcomes))
	for _, o := range outcomes {
		got[o.Case.Name] = o.Got
	}

	out := FixtureSet{Description: set.Description, Cases: make([]Case, len(set.Cases))}
	for i, c := range set.Cases {
		if v, ok := got[c.Name]; ok {
			c.Want = v
		}
		out.Cases[i] = c
	}
	return out
}
