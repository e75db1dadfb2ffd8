package models

import (
	"fmt"
	"strings"
	"time"

	appErrors "github.com/noah-isme/uni-records-api/pkg/errors"
)

// Role tags the concrete Person variant.
type Role string

// Supported person roles.
const (
	RoleStudent   Role = "STUDENT"
	RoleProfessor Role = "PROFESSOR"
)

// ContractType enumerates professor employment contracts.
type ContractType string

// Supported contract types.
const (
	ContractFullTime ContractType = "FULL_TIME"
	ContractPartTime ContractType = "PART_TIME"
	ContractHourly   ContractType = "HOURLY"
)

// ParseContractType normalises a raw contract string.
func ParseContractType(raw string) (ContractType, bool) {
	switch ContractType(strings.ToUpper(strings.TrimSpace(raw))) {
	case ContractFullTime:
		return ContractFullTime, true
	case ContractPartTime:
		return ContractPartTime, true
	case ContractHourly:
		return ContractHourly, true
	}
	return "", false
}

// Person holds the fields shared by students and professors. The identifier
// and birth date never change after construction; names may be edited but
// must stay non-empty.
type Person struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate time.Time `json:"birth_date"`
}

func newPerson(id, firstName, lastName string, birthDate time.Time) (Person, error) {
	if strings.TrimSpace(id) == "" {
		return Person{}, appErrors.Clone(appErrors.ErrInvariant, "identifier must not be empty")
	}
	if strings.TrimSpace(firstName) == "" {
		return Person{}, appErrors.Clone(appErrors.ErrInvariant, "first name must not be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return Person{}, appErrors.Clone(appErrors.ErrInvariant, "last name must not be empty")
	}
	return Person{ID: id, FirstName: firstName, LastName: lastName, BirthDate: birthDate}, nil
}

// Identifier returns the unique person id.
func (p *Person) Identifier() string { return p.ID }

// FullName joins first and last name for display.
func (p *Person) FullName() string { return p.FirstName + " " + p.LastName }

// Age computes the whole-year age as of today.
func (p *Person) Age() int { return AgeAt(p.BirthDate, time.Now()) }

// AgeAt computes calendar-correct whole-year age at the given date: the year
// difference is decremented when the birthday has not yet occurred that year.
func AgeAt(birthDate, at time.Time) int {
	age := at.Year() - birthDate.Year()
	anniversary := birthDate.AddDate(age, 0, 0)
	if anniversary.After(at) {
		age--
	}
	return age
}

// SetFirstName updates the first name, rejecting blank values.
func (p *Person) SetFirstName(name string) error {
	if strings.TrimSpace(name) == "" {
		return appErrors.Clone(appErrors.ErrInvariant, "first name must not be empty")
	}
	p.FirstName = name
	return nil
}

// SetLastName updates the last name, rejecting blank values.
func (p *Person) SetLastName(name string) error {
	if strings.TrimSpace(name) == "" {
		return appErrors.Clone(appErrors.ErrInvariant, "last name must not be empty")
	}
	p.LastName = name
	return nil
}

// Student is a Person enrolled in a study program.
type Student struct {
	Person
	Program          string `json:"program"`
	EnrollmentNumber string `json:"enrollment_number"`
}

// NewStudent constructs a Student, enforcing the minimum-age invariant.
func NewStudent(id, firstName, lastName string, birthDate time.Time, program, enrollmentNumber string, minAge int) (*Student, error) {
	person, err := newPerson(id, firstName, lastName, birthDate)
	if err != nil {
		return nil, err
	}
	if age := person.Age(); age < minAge {
		return nil, appErrors.Clone(appErrors.ErrInvariant,
			fmt.Sprintf("age %d is below the minimum of %d for a student", age, minAge))
	}
	return &Student{Person: person, Program: program, EnrollmentNumber: enrollmentNumber}, nil
}

// Role returns the student role tag.
func (s *Student) Role() Role { return RoleStudent }

// Professor is a Person teaching in a department.
type Professor struct {
	Person
	Department string       `json:"department"`
	Contract   ContractType `json:"contract"`
	BaseSalary float64      `json:"base_salary"`
}

// NewProfessor constructs a Professor, enforcing the minimum-age invariant.
// The salary range is checked declaratively by the constraint catalog, not
// here; an out-of-range salary builds fine and is reported on validation.
func NewProfessor(id, firstName, lastName string, birthDate time.Time, department string, contract ContractType, baseSalary float64, minAge int) (*Professor, error) {
	person, err := newPerson(id, firstName, lastName, birthDate)
	if err != nil {
		return nil, err
	}
	if age := person.Age(); age < minAge {
		return nil, appErrors.Clone(appErrors.ErrInvariant,
			fmt.Sprintf("age %d is below the minimum of %d for a professor", age, minAge))
	}
	return &Professor{Person: person, Department: department, Contract: contract, BaseSalary: baseSalary}, nil
}

// Role returns the professor role tag.
func (p *Professor) Role() Role { return RoleProfessor }
