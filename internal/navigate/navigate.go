// Package navigate finds the chronological neighbors of a publication
// among records sharing its type and lifecycle stage.
package navigate

import (
	"fmt"

	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
)

// Direction selects which neighbor to fetch.
type Direction string

// Legal directions.
const (
	Previous Direction = "previous"
	Next     Direction = "next"
)

// DateField names the ordering key for a stage.
type DateField string

// Ordering keys. In-revision records order by submission date, published
// records by publication date.
const (
	ByPubDate        DateField = "pub_date"
	BySubmissionDate DateField = "submission_date"
)

// Query describes a neighbor lookup against the store.
type Query struct {
	Type      publication.Type
	Stage     status.Stage // StageInRevision or StagePublished
	Field     DateField
	Ref       publication.Date
	Direction Direction
}

// Store is the read-only persistence surface the navigator needs.
type Store interface {
	// Neighbor returns the displayable publication of the query's type and
	// stage whose ordering key is closest to Ref in the given direction,
	// or nil when no such record exists. Ties on the key are resolved in
	// implementation-defined order.
	Neighbor(q Query) (*publication.Publication, error)
}

// Neighbor returns the chronologically adjacent publication sharing pub's
// type and stage. It fails with *InvalidStageError for records below the
// in-revision span, *MissingDateError when the anchor lacks its stage's
// date, and *NoNeighborError when no qualifying record exists. An unknown
// direction is a contract violation and panics.
func Neighbor(store Store, ranges status.Ranges, pub *publication.Publication, dir Direction) (*publication.Publication, error) {
	if dir != Previous && dir != Next {
		panic(fmt.Sprintf("navigate: direction must be %q or %q, got %q", Previous, Next, dir))
	}

	// Navigation is only defined over the inclusive in-revision..published
	// span; gaps between the two configured ranges stay navigable.
	if pub.Status == nil || *pub.Status < ranges.InRevision.Min || *pub.Status >= ranges.Published.Max {
		return nil, &InvalidStageError{Type: pub.Type}
	}

	stage, field := status.StageInRevision, BySubmissionDate
	ref := pub.SubmissionDate
	if *pub.Status >= ranges.Published.Min {
		stage, field = status.StagePublished, ByPubDate
		ref = pub.PubDate
	}
	if ref == nil {
		return nil, &MissingDateError{Type: pub.Type, Field: field, Direction: dir}
	}

	neighbor, err := store.Neighbor(Query{
		Type:      pub.Type,
		Stage:     stage,
		Field:     field,
		Ref:       *ref,
		Direction: dir,
	})
	if err != nil {
		return nil, fmt.Errorf("querying %s %s: %w", dir, pub.Type, err)
	}
	if neighbor == nil {
		return nil, &NoNeighborError{Type: pub.Type, Direction: dir}
	}
	return neighbor, nil
}
