package service

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-records-api/internal/models"
	"github.com/noah-isme/uni-records-api/pkg/config"
)

type enrollmentLedger interface {
	Enrollments() []*models.Enrollment
	DistinctStudents() []*models.Student
	GeneralAverage(studentID string) float64
}

type courseReader interface {
	FindByID(code string) (*models.Course, bool)
}

// AnalyticsService derives rankings, risk lists and per-program statistics
// from the enrollment ledger. All queries are read-only folds over the
// ledger snapshot; ties keep first-enrolled order through stable sorts.
type AnalyticsService struct {
	ledger   enrollmentLedger
	courses  courseReader
	academic config.AcademicConfig
	logger   *zap.Logger
}

// NewAnalyticsService constructs AnalyticsService.
func NewAnalyticsService(ledger enrollmentLedger, courses courseReader, academic config.AcademicConfig, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if academic.RiskThreshold == 0 {
		academic.RiskThreshold = 7.0
	}
	if academic.RankingLimit == 0 {
		academic.RankingLimit = 10
	}
	return &AnalyticsService{ledger: ledger, courses: courses, academic: academic, logger: logger}
}

// rankedStudents pairs every distinct enrolled student that has at least one
// graded course with their general average, in first-enrolled order.
func (s *AnalyticsService) rankedStudents() []models.RankedStudent {
	var rows []models.RankedStudent
	for _, student := range s.ledger.DistinctStudents() {
		average := s.ledger.GeneralAverage(student.ID)
		if average <= 0 {
			continue
		}
		rows = append(rows, models.RankedStudent{Student: student, Average: average})
	}
	return rows
}

// TopStudents returns the best students by general average, descending. A
// non-positive limit falls back to the configured ranking limit.
func (s *AnalyticsService) TopStudents(limit int) []models.RankedStudent {
	if limit <= 0 {
		limit = s.academic.RankingLimit
	}
	rows := s.rankedStudents()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Average > rows[j].Average })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// StudentsAtRisk returns students whose general average is positive but
// below the threshold, ascending. A non-positive threshold falls back to the
// configured risk threshold.
func (s *AnalyticsService) StudentsAtRisk(threshold float64) []models.RankedStudent {
	if threshold <= 0 {
		threshold = s.academic.RiskThreshold
	}
	var rows []models.RankedStudent
	for _, row := range s.rankedStudents() {
		if row.Average < threshold {
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Average < rows[j].Average })
	return rows
}

// MostPopularCourses counts distinct students per course, descending.
func (s *AnalyticsService) MostPopularCourses() []models.CoursePopularity {
	type group struct {
		code     string
		students map[string]struct{}
	}
	var groups []*group
	index := make(map[string]*group)

	for _, e := range s.ledger.Enrollments() {
		code := strings.ToUpper(e.CourseCode)
		g, ok := index[code]
		if !ok {
			g = &group{code: e.CourseCode, students: make(map[string]struct{})}
			index[code] = g
			groups = append(groups, g)
		}
		g.students[strings.ToUpper(e.StudentID)] = struct{}{}
	}

	var rows []models.CoursePopularity
	for _, g := range groups {
		course, ok := s.courses.FindByID(g.code)
		if !ok {
			continue
		}
		rows = append(rows, models.CoursePopularity{Course: course, Students: len(g.students)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Students > rows[j].Students })
	return rows
}

// OverallAverage is the mean of all students' general averages, excluding
// students without graded courses. Returns 0 when no student qualifies.
func (s *AnalyticsService) OverallAverage() float64 {
	rows := s.rankedStudents()
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, row := range rows {
		sum += row.Average
	}
	return sum / float64(len(rows))
}

// StatsByProgram groups distinct enrolled students by program and reports
// student counts and the mean of general averages per group, descending by
// that mean. Students without graded courses count toward the group size but
// not its mean.
func (s *AnalyticsService) StatsByProgram() []models.ProgramStats {
	type group struct {
		program  string
		count    int
		sum      float64
		averaged int
	}
	var groups []*group
	index := make(map[string]*group)

	for _, student := range s.ledger.DistinctStudents() {
		g, ok := index[student.Program]
		if !ok {
			g = &group{program: student.Program}
			index[student.Program] = g
			groups = append(groups, g)
		}
		g.count++
		if average := s.ledger.GeneralAverage(student.ID); average > 0 {
			g.sum += average
			g.averaged++
		}
	}

	rows := make([]models.ProgramStats, 0, len(groups))
	for _, g := range groups {
		stats := models.ProgramStats{Program: g.program, Students: g.count}
		if g.averaged > 0 {
			stats.Average = g.sum / float64(g.averaged)
		}
		rows = append(rows, stats)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Average > rows[j].Average })
	return rows
}

// FindStudents applies an arbitrary predicate over the distinct enrolled
// students.
func (s *AnalyticsService) FindStudents(predicate func(*models.Student) bool) []*models.Student {
	var result []*models.Student
	for _, student := range s.ledger.DistinctStudents() {
		if predicate(student) {
			result = append(result, student)
		}
	}
	return result
}
