package models

import (
	"strings"

	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

// Course is a unit of study identified by its code. A course may reference
// the professor assigned to teach it; the reference is an identifier resolved
// against the professor repository at read time, never an embedded copy.
type Course struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Credits     int     `json:"credits"`
	ProfessorID *string `json:"professor_id,omitempty"`
}

// NewCourse constructs a Course. Code and name must be non-blank and credits
// positive; the code format and credit range are re-checked declaratively by
// the constraint catalog.
func NewCourse(code, name string, credits int) (*Course, error) {
	if strings.TrimSpace(code) == "" {
		return nil, appErrors.Clone(appErrors.ErrInvariant, "course code must not be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, appErrors.Clone(appErrors.ErrInvariant, "course name must not be empty")
	}
	if credits <= 0 {
		return nil, appErrors.Clone(appErrors.ErrInvariant, "credits must be positive")
	}
	return &Course{Code: code, Name: name, Credits: credits}, nil
}

// Identifier returns the course code, the unique key within the course
// repository.
func (c *Course) Identifier() string { return c.Code }

// SetName updates the course name, rejecting blank values.
func (c *Course) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return appErrors.Clone(appErrors.ErrInvariant, "course name must not be empty")
	}
	c.Name = name
	return nil
}

// AssignProfessor records the professor teaching this course.
func (c *Course) AssignProfessor(professorID string) {
	c.ProfessorID = &professorID
}

// ClearProfessor removes the professor assignment.
func (c *Course) ClearProfessor() {
	c.ProfessorID = nil
}
