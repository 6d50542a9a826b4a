// Package status classifies publication status codes into lifecycle stages.
package status

import "fmt"

// Flags marks which lifecycle stage a status code falls in. At most one
// flag is set; a nil or unclassified status leaves all three false.
type Flags struct {
	InPrep     bool `json:"is_inprep"`
	InRevision bool `json:"is_inrevision"`
	Published  bool `json:"is_published"`
}

// Stage names a lifecycle stage for queries and error messages.
type Stage string

// Lifecycle stages.
const (
	StageInPrep     Stage = "in preparation"
	StageInRevision Stage = "in revision"
	StagePublished  Stage = "published"
)

// Range is a half-open integer interval [Min, Max).
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether v falls in the half-open interval.
func (r Range) Contains(v int) bool {
	return r.Min <= v && v < r.Max
}

func (r Range) overlaps(other Range) bool {
	return r.Min < other.Max && other.Min < r.Max
}

// Ranges carries the three stage intervals. They must be disjoint; they
// need not be contiguous, and codes outside every interval classify to no
// stage at all.
type Ranges struct {
	InPrep     Range `json:"inprep" yaml:"inprep"`
	InRevision Range `json:"inrevision" yaml:"inrevision"`
	Published  Range `json:"published" yaml:"published"`
}

// DefaultRanges returns the stock stage intervals. Published runs to 100
// so the terminal "Resting" code (99) stays citable as a published record.
func DefaultRanges() Ranges {
	return Ranges{
		InPrep:     Range{Min: 0, Max: 20},
		InRevision: Range{Min: 20, Max: 50},
		Published:  Range{Min: 50, Max: 100},
	}
}

// Validate checks that the three intervals are well-formed and disjoint.
func (r Ranges) Validate() error {
	named := []struct {
		stage Stage
		rng   Range
	}{
		{StageInPrep, r.InPrep},
		{StageInRevision, r.InRevision},
		{StagePublished, r.Published},
	}
	for _, n := range named {
		if n.rng.Min >= n.rng.Max {
			return fmt.Errorf("%s range [%d,%d) is empty", n.stage, n.rng.Min, n.rng.Max)
		}
	}
	for i := 0; i < len(named); i++ {
		for j := i + 1; j < len(named); j++ {
			if named[i].rng.overlaps(named[j].rng) {
				return fmt.Errorf("%s range [%d,%d) overlaps %s range [%d,%d)",
					named[i].stage, named[i].rng.Min, named[i].rng.Max,
					named[j].stage, named[j].rng.Min, named[j].rng.Max)
			}
		}
	}
	return nil
}

// Classify derives stage flags from a status code. Nil statuses are legal
// (unsaved drafts) and classify to no stage.
func (r Ranges) Classify(status *int) Flags {
	var f Flags
	if status == nil {
		return f
	}
	f.InPrep = r.InPrep.Contains(*status)
	f.InRevision = r.InRevision.Contains(*status)
	f.Published = r.Published.Contains(*status)
	return f
}

// Stage returns the stage a status code falls in, or "" if none.
func (r Ranges) Stage(status *int) Stage {
	switch f := r.Classify(status); {
	case f.InPrep:
		return StageInPrep
	case f.InRevision:
		return StageInRevision
	case f.Published:
		return StagePublished
	}
	return ""
}
