package status

import "sort"

// Choice is one entry in the ordinal status choice set.
type Choice struct {
	Code  int    `json:"code" yaml:"code"`
	Label string `json:"label" yaml:"label"`
}

// DefaultChoices is the stock status choice set, ordered by code.
// "Resting" is a published-record terminal state, not archival removal.
var DefaultChoices = []Choice{
	{0, "In preparation"},
	{1, "Working paper"},
	{20, "Submitted"},
	{30, "Revise"},
	{35, "Resubmitted"},
	{40, "Conditionally accepted"},
	{50, "Forthcoming"},
	{55, "In press"},
	{60, "Published"},
	{99, "Resting"},
}

// Scheme bundles the stage ranges with the status choice set. The zero
// value is not usable; construct with DefaultScheme or from config.
type Scheme struct {
	Ranges  Ranges
	Choices []Choice
}

// DefaultScheme returns the stock ranges and choice set.
func DefaultScheme() *Scheme {
	return &Scheme{Ranges: DefaultRanges(), Choices: DefaultChoices}
}

// Label returns the display label for an exact status code, or "" when the
// code is not in the choice set or the status is nil.
func (s *Scheme) Label(status *int) string {
	if status == nil {
		return ""
	}
	for _, c := range s.Choices {
		if c.Code == *status {
			return c.Label
		}
	}
	return ""
}

// CodeFor returns the status code for a label, matched case-sensitively.
func (s *Scheme) CodeFor(label string) (int, bool) {
	for _, c := range s.Choices {
		if c.Label == label {
			return c.Code, true
		}
	}
	return 0, false
}

// SortedChoices returns the choice set ordered by code.
func (s *Scheme) SortedChoices() []Choice {
	out := make([]Choice, len(s.Choices))
	copy(out, s.Choices)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
