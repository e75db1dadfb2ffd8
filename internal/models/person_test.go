package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStudent(t *testing.T) {
	birth := time.Now().AddDate(-20, 0, 0)
	student, err := NewStudent("S1", "Ana", "Gomez", birth, "Computer Science", "EN-001", 15)
	require.NoError(t, err)
	assert.Equal(t, "S1", student.Identifier())
	assert.Equal(t, "Ana Gomez", student.FullName())
	assert.Equal(t, RoleStudent, student.Role())
	assert.Equal(t, 20, student.Age())
}

func TestNewStudentBelowMinimumAge(t *testing.T) {
	// One day short of the fifteenth birthday.
	birth := time.Now().AddDate(-15, 0, 1)
	_, err := NewStudent("S1", "Ana", "Gomez", birth, "Computer Science", "", 15)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below the minimum")
}

func TestNewStudentExactlyMinimumAge(t *testing.T) {
	birth := time.Now().AddDate(-15, 0, 0)
	_, err := NewStudent("S1", "Ana", "Gomez", birth, "Computer Science", "", 15)
	assert.NoError(t, err)
}

func TestNewStudentBlankFields(t *testing.T) {
	birth := time.Now().AddDate(-20, 0, 0)
	_, err := NewStudent("", "Ana", "Gomez", birth, "CS", "", 15)
	assert.Error(t, err)
	_, err = NewStudent("S1", "  ", "Gomez", birth, "CS", "", 15)
	assert.Error(t, err)
	_, err = NewStudent("S1", "Ana", "", birth, "CS", "", 15)
	assert.Error(t, err)
}

func TestNewProfessor(t *testing.T) {
	birth := time.Now().AddDate(-40, 0, 0)
	professor, err := NewProfessor("P1", "Luis", "Marin", birth, "Mathematics", ContractFullTime, 4500, 25)
	require.NoError(t, err)
	assert.Equal(t, RoleProfessor, professor.Role())
	assert.Equal(t, "Mathematics", professor.Department)
}

func TestNewProfessorBelowMinimumAge(t *testing.T) {
	birth := time.Now().AddDate(-25, 0, 1)
	_, err := NewProfessor("P1", "Luis", "Marin", birth, "Mathematics", ContractFullTime, 4500, 25)
	assert.Error(t, err)
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 23, AgeAt(birth, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, AgeAt(birth, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 24, AgeAt(birth, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestSetNameRejectsBlank(t *testing.T) {
	birth := time.Now().AddDate(-20, 0, 0)
	student, err := NewStudent("S1", "Ana", "Gomez", birth, "CS", "", 15)
	require.NoError(t, err)

	assert.Error(t, student.SetFirstName(" "))
	assert.Error(t, student.SetLastName(""))
	require.NoError(t, student.SetFirstName("Maria"))
	assert.Equal(t, "Maria Gomez", student.FullName())
}

func TestParseContractType(t *testing.T) {
	parsed, ok := ParseContractType(" full_time ")
	require.True(t, ok)
	assert.Equal(t, ContractFullTime, parsed)

	_, ok = ParseContractType("freelance")
	assert.False(t, ok)
}
