package models

// RankedStudent pairs a student with their general average, the mean of
// per-course averages over courses that have at least one grade.
type RankedStudent struct {
	Student *Student `json:"student"`
	Average float64  `json:"average"`
}

// CoursePopularity counts distinct students enrolled in a course.
type CoursePopularity struct {
	Course   *Course `json:"course"`
	Students int     `json:"students"`
}

// ProgramStats aggregates the distinct enrolled students of one program.
// Average is the mean of the general averages of students that have at least
// one graded course; students without grades count toward Students only.
type ProgramStats struct {
	Program  string  `json:"program"`
	Students int     `json:"students"`
	Average  float64 `json:"average"`
}
