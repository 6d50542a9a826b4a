package main

import (
	"testing"

	"github.com/matsen/vitae/internal/publication"
)

func TestFormatStudentLevel(t *testing.T) {
	doctoral := publication.StudentDoctoral
	masters := publication.StudentMasters
	undergrad := publication.StudentUndergraduate
	unknown := 7

	tests := []struct {
		name  string
		level *int
		want  string
	}{
		{"nil level renders nothing", nil, ""},
		{"undergraduate", &undergrad, " (Undergraduate student)"},
		{"masters", &masters, " (Masters student)"},
		{"doctoral", &doctoral, " (Doctoral student)"},
		{"unrecognized code renders nothing", &unknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatStudentLevel(tt.level); got != tt.want {
				t.Errorf("formatStudentLevel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatAuthorsShort(t *testing.T) {
	authors := []publication.Authorship{
		{Collaborator: publication.Collaborator{LastName: "Einstein"}, DisplayOrder: 1},
		{Collaborator: publication.Collaborator{LastName: "Bohr"}, DisplayOrder: 2},
		{Collaborator: publication.Collaborator{LastName: "Curie"}, DisplayOrder: 3},
	}

	if got := formatAuthorsShort(nil, 6); got != "(no authors)" {
		t.Errorf("empty list = %q", got)
	}
	if got := formatAuthorsShort(authors, 6); got != "Einstein, Bohr, Curie" {
		t.Errorf("full list = %q", got)
	}
	if got := formatAuthorsShort(authors, 2); got != "Einstein, Bohr et al." {
		t.Errorf("truncated list = %q", got)
	}
}
