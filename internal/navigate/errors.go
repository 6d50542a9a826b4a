package navigate

import (
	"errors"
	"fmt"

	"github.com/matsen/vitae/internal/publication"
	"github.com/matsen/vitae/internal/status"
)

// InvalidStageError indicates navigation was requested for a record outside
// the in-revision/published span.
type InvalidStageError struct {
	Type publication.Type
}

func (e *InvalidStageError) Error() string {
	return fmt.Sprintf("%s must be %s or %s to navigate by status",
		e.Type, status.StageInRevision, status.StagePublished)
}

// MissingDateError indicates the anchor record lacks the date its stage
// orders by.
type MissingDateError struct {
	Type      publication.Type
	Field     DateField
	Direction Direction
}

func (e *MissingDateError) Error() string {
	return fmt.Sprintf("%s must have %s to get %s publication by status",
		e.Type, e.Field, e.Direction)
}

// NoNeighborError indicates no qualifying record exists in the requested
// direction.
type NoNeighborError struct {
	Type      publication.Type
	Direction Direction
}

func (e *NoNeighborError) Error() string {
	direc := string(e.Direction)
	if e.Direction == Next {
		direc = "subsequent"
	}
	return fmt.Sprintf("there is no %s %s with the same status", direc, e.Type)
}

// IsNoNeighbor reports whether err is a NoNeighborError.
func IsNoNeighbor(err error) bool {
	var target *NoNeighborError
	return errors.As(err, &target)
}
