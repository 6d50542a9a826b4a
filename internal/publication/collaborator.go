package publication

import "strings"

// Collaborator is a co-author or editor listed on CV entries. Email is the
// stable identity used to deduplicate collaborators across records.
type Collaborator struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	MiddleInitial string `json:"middle_initial,omitempty"`
	Suffix        string `json:"suffix,omitempty"`
	Email         string `json:"email"`
	Institution   string `json:"institution,omitempty"`
	Website       string `json:"website,omitempty"`
}

// Student collaboration levels.
const (
	StudentUndergraduate = 0
	StudentMasters       = 10
	StudentDoctoral      = 20
)

// StudentLevelLabels maps student level codes to display labels.
var StudentLevelLabels = map[int]string{
	StudentUndergraduate: "Undergraduate",
	StudentMasters:       "Masters",
	StudentDoctoral:      "Doctoral",
}

// Authorship ties a collaborator to a publication at a display position.
// DisplayOrder is unique per publication and establishes the strict author
// order used for citation rendering.
type Authorship struct {
	Collaborator Collaborator `json:"collaborator"`
	DisplayOrder int          `json:"display_order"`
	PrintMiddle  bool         `json:"print_middle"`
	StudentLevel *int         `json:"student_level,omitempty"`
}

// Editorship ties an editor to a publication at a display position.
type Editorship struct {
	Collaborator Collaborator `json:"collaborator"`
	DisplayOrder int          `json:"display_order"`
}

// GivenName folds the first name and middle initial into the single given
// string used by citation name lists. A trailing period on a bare middle
// initial is dropped so styles control their own punctuation.
func (c Collaborator) GivenName() string {
	given := strings.TrimSpace(c.FirstName + " " + c.MiddleInitial)
	given = strings.TrimRight(given, ".")
	return strings.TrimSpace(given)
}

// DisplayName returns "Last, First M" for list output.
func (c Collaborator) DisplayName() string {
	name := c.LastName + ", " + c.FirstName
	if c.MiddleInitial != "" {
		name += " " + c.MiddleInitial
	}
	return strings.TrimSpace(name)
}
