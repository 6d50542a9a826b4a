package citation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/vitae/internal/publication"
)

// MissingRelationError indicates a publication cannot be cited because a
// structurally required relation has no rows.
type MissingRelationError struct {
	Type     publication.Type
	Relation string
}

func (e *MissingRelationError) Error() string {
	return fmt.Sprintf("cannot cite %q when %q is undefined", e.Type, e.Relation)
}

// IsMissingRelation reports whether err is a MissingRelationError.
func IsMissingRelation(err error) bool {
	var target *MissingRelationError
	return errors.As(err, &target)
}

// ConfigError indicates the caller configured the renderer incorrectly
// (bad format, illegal on-error policy). It is never subject to the
// on-error policy itself.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "citation configuration error: " + e.Reason
}

// StyleNotFoundError indicates no style definition matched the requested
// name in any search location. Style lookup failures are fatal and bypass
// the per-citation on-error policy.
type StyleNotFoundError struct {
	Name     string
	Searched []string
}

func (e *StyleNotFoundError) Error() string {
	return fmt.Sprintf("citation style %q not found (searched %s, bundled registry)",
		e.Name, strings.Join(e.Searched, ", "))
}
