package status

import (
	"strings"
	"testing"
)

func intp(v int) *int { return &v }

func TestRange_Contains(t *testing.T) {
	r := Range{Min: 20, Max: 50}

	tests := []struct {
		v    int
		want bool
	}{
		{19, false},
		{20, true}, // Min is inclusive
		{35, true},
		{49, true},
		{50, false}, // Max is exclusive
	}

	for _, tt := range tests {
		if got := r.Contains(tt.v); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	ranges := DefaultRanges()

	tests := []struct {
		name   string
		status *int
		want   Flags
	}{
		{"nil status", nil, Flags{}},
		{"in preparation", intp(0), Flags{InPrep: true}},
		{"working paper", intp(1), Flags{InPrep: true}},
		{"boundary into revision", intp(20), Flags{InRevision: true}},
		{"conditionally accepted", intp(40), Flags{InRevision: true}},
		{"boundary into published", intp(50), Flags{Published: true}},
		{"published", intp(60), Flags{Published: true}},
		{"resting", intp(99), Flags{Published: true}},
		{"above every range", intp(150), Flags{}},
		{"negative", intp(-1), Flags{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ranges.Classify(tt.status); got != tt.want {
				t.Errorf("Classify(%v) = %+v, want %+v", tt.status, got, tt.want)
			}
		})
	}
}

// Every classifiable code sets exactly one flag; everything else sets none.
func TestClassify_AtMostOneFlag(t *testing.T) {
	ranges := DefaultRanges()
	for code := -10; code <= 110; code++ {
		f := ranges.Classify(&code)
		set := 0
		for _, b := range []bool{f.InPrep, f.InRevision, f.Published} {
			if b {
				set++
			}
		}
		if set > 1 {
			t.Errorf("Classify(%d) set %d flags: %+v", code, set, f)
		}
	}
}

func TestStage(t *testing.T) {
	ranges := DefaultRanges()

	tests := []struct {
		status *int
		want   Stage
	}{
		{nil, ""},
		{intp(0), StageInPrep},
		{intp(30), StageInRevision},
		{intp(55), StagePublished},
		{intp(100), ""},
	}

	for _, tt := range tests {
		if got := ranges.Stage(tt.status); got != tt.want {
			t.Errorf("Stage(%v) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestRanges_Validate(t *testing.T) {
	if err := DefaultRanges().Validate(); err != nil {
		t.Errorf("DefaultRanges().Validate() = %v, want nil", err)
	}

	empty := DefaultRanges()
	empty.InRevision = Range{Min: 30, Max: 30}
	if err := empty.Validate(); err == nil {
		t.Error("Validate() with empty range passed, want error")
	}

	overlapping := DefaultRanges()
	overlapping.Published = Range{Min: 40, Max: 100}
	err := overlapping.Validate()
	if err == nil {
		t.Fatal("Validate() with overlapping ranges passed, want error")
	}
	if !strings.Contains(err.Error(), "overlaps") {
		t.Errorf("Validate() error = %v, want overlap message", err)
	}
}

// Gaps between ranges are legal; codes in the gap classify to no stage.
func TestRanges_GapIsLegal(t *testing.T) {
	gapped := Ranges{
		InPrep:     Range{Min: 0, Max: 10},
		InRevision: Range{Min: 20, Max: 50},
		Published:  Range{Min: 50, Max: 90},
	}
	if err := gapped.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if got := gapped.Stage(intp(15)); got != "" {
		t.Errorf("Stage(15) = %q, want no stage", got)
	}
}

func TestScheme_Label(t *testing.T) {
	scheme := DefaultScheme()

	tests := []struct {
		status *int
		want   string
	}{
		{nil, ""},
		{intp(0), "In preparation"},
		{intp(35), "Resubmitted"},
		{intp(99), "Resting"},
		{intp(7), ""}, // Classifiable but not a named choice
	}

	for _, tt := range tests {
		if got := scheme.Label(tt.status); got != tt.want {
			t.Errorf("Label(%v) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestScheme_CodeFor(t *testing.T) {
	scheme := DefaultScheme()

	code, ok := scheme.CodeFor("In press")
	if !ok || code != 55 {
		t.Errorf("CodeFor(%q) = %d, %v, want 55, true", "In press", code, ok)
	}
	if _, ok := scheme.CodeFor("in press"); ok {
		t.Error("CodeFor is case-sensitive; lowercase label matched")
	}
	if _, ok := scheme.CodeFor("Nonexistent"); ok {
		t.Error("CodeFor matched an unknown label")
	}
}

func TestScheme_SortedChoices(t *testing.T) {
	scheme := &Scheme{
		Ranges: DefaultRanges(),
		Choices: []Choice{
			{60, "Published"},
			{0, "In preparation"},
			{20, "Submitted"},
		},
	}
	sorted := scheme.SortedChoices()
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Code > sorted[i].Code {
			t.Fatalf("SortedChoices not ordered: %+v", sorted)
		}
	}
	// The scheme's own slice is left alone.
	if scheme.Choices[0].Code != 60 {
		t.Error("SortedChoices mutated the scheme's choice set")
	}
}
