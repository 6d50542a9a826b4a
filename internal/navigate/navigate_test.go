package navigate

import (
	"errors"
	"testing"

	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
)

func intp(v int) *int { return &v }

func datep(s string) *publication.Date {
	d := publication.MustParseDate(s)
	return &d
}

// fakeStore records the query it receives and returns a canned result.
type fakeStore struct {
	got    Query
	result *publication.Publication
	err    error
}

func (f *fakeStore) Neighbor(q Query) (*publication.Publication, error) {
	f.got = q
	return f.result, f.err
}

func anchor(statusCode int) *publication.Publication {
	return &publication.Publication{
		Type:           publication.TypeArticle,
		Slug:           "anchor",
		Status:         intp(statusCode),
		PubDate:        datep("2020-06-15"),
		SubmissionDate: datep("2019-11-01"),
	}
}

func TestNeighbor_PublishedUsesPubDate(t *testing.T) {
	want := &publication.Publication{Slug: "neighbor"}
	store := &fakeStore{result: want}

	got, err := Neighbor(store, status.DefaultRanges(), anchor(60), Next)
	if err != nil {
		t.Fatalf("Neighbor() error: %v", err)
	}
	if got != want {
		t.Errorf("Neighbor() = %v, want store result", got)
	}

	q := store.got
	if q.Stage != status.StagePublished {
		t.Errorf("query stage = %q, want %q", q.Stage, status.StagePublished)
	}
	if q.Field != ByPubDate {
		t.Errorf("query field = %q, want %q", q.Field, ByPubDate)
	}
	if q.Ref.String() != "2020-06-15" {
		t.Errorf("query ref = %s, want pub date", q.Ref)
	}
	if q.Direction != Next {
		t.Errorf("query direction = %q, want %q", q.Direction, Next)
	}
}

func TestNeighbor_InRevisionUsesSubmissionDate(t *testing.T) {
	store := &fakeStore{result: &publication.Publication{Slug: "neighbor"}}

	if _, err := Neighbor(store, status.DefaultRanges(), anchor(30), Previous); err != nil {
		t.Fatalf("Neighbor() error: %v", err)
	}

	q := store.got
	if q.Stage != status.StageInRevision {
		t.Errorf("query stage = %q, want %q", q.Stage, status.StageInRevision)
	}
	if q.Field != BySubmissionDate {
		t.Errorf("query field = %q, want %q", q.Field, BySubmissionDate)
	}
	if q.Ref.String() != "2019-11-01" {
		t.Errorf("query ref = %s, want submission date", q.Ref)
	}
}

func TestNeighbor_InvalidStage(t *testing.T) {
	tests := []struct {
		name   string
		status *int
	}{
		{"nil status", nil},
		{"in preparation", intp(0)},
		{"below in-revision", intp(19)},
		{"at published max", intp(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := anchor(0)
			pub.Status = tt.status
			_, err := Neighbor(&fakeStore{}, status.DefaultRanges(), pub, Next)
			var stageErr *InvalidStageError
			if !errors.As(err, &stageErr) {
				t.Errorf("Neighbor() error = %v, want *InvalidStageError", err)
			}
		})
	}
}

// Codes in a gap between the configured in-revision and published ranges
// still navigate, ordered like in-revision records.
func TestNeighbor_GapNavigatesAsInRevision(t *testing.T) {
	ranges := status.Ranges{
		InPrep:     status.Range{Min: 0, Max: 10},
		InRevision: status.Range{Min: 20, Max: 40},
		Published:  status.Range{Min: 50, Max: 90},
	}
	store := &fakeStore{result: &publication.Publication{Slug: "neighbor"}}

	if _, err := Neighbor(store, ranges, anchor(45), Next); err != nil {
		t.Fatalf("Neighbor() error: %v", err)
	}
	if store.got.Stage != status.StageInRevision {
		t.Errorf("gap code navigated as %q, want %q", store.got.Stage, status.StageInRevision)
	}
}

func TestNeighbor_MissingDate(t *testing.T) {
	pub := anchor(60)
	pub.PubDate = nil

	_, err := Neighbor(&fakeStore{}, status.DefaultRanges(), pub, Previous)
	var dateErr *MissingDateError
	if !errors.As(err, &dateErr) {
		t.Fatalf("Neighbor() error = %v, want *MissingDateError", err)
	}
	if dateErr.Field != ByPubDate {
		t.Errorf("missing field = %q, want %q", dateErr.Field, ByPubDate)
	}
}

func TestNeighbor_NoNeighbor(t *testing.T) {
	_, err := Neighbor(&fakeStore{result: nil}, status.DefaultRanges(), anchor(60), Next)
	if !IsNoNeighbor(err) {
		t.Fatalf("Neighbor() error = %v, want *NoNeighborError", err)
	}
	// "subsequent" mirrors the phrasing users see in the next direction.
	if got := err.Error(); got != "there is no subsequent article with the same status" {
		t.Errorf("error = %q", got)
	}
}

func TestNeighbor_StoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("disk on fire")
	_, err := Neighbor(&fakeStore{err: storeErr}, status.DefaultRanges(), anchor(60), Next)
	if !errors.Is(err, storeErr) {
		t.Errorf("Neighbor() error = %v, want wrapped store error", err)
	}
	if IsNoNeighbor(err) {
		t.Error("store error misreported as NoNeighborError")
	}
}

func TestNeighbor_BadDirectionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Neighbor() with bad direction did not panic")
		}
	}()
	Neighbor(&fakeStore{}, status.DefaultRanges(), anchor(60), Direction("sideways"))
}
