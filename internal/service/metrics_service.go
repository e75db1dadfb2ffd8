package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the academic domain.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec

	studentsGauge    prometheus.Gauge
	professorsGauge  prometheus.Gauge
	coursesGauge     prometheus.Gauge
	enrollmentsTotal prometheus.Counter
	gradesTotal      prometheus.Counter
}

// NewMetricsService registers the core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	studentsGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registered_students",
		Help: "Number of students currently registered",
	})

	professorsGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registered_professors",
		Help: "Number of professors currently registered",
	})

	coursesGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "registered_courses",
		Help: "Number of courses currently registered",
	})

	enrollmentsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "enrollments_created_total",
		Help: "Total enrollments created",
	})

	gradesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "grades_recorded_total",
		Help: "Total grades recorded",
	})

	registry.MustRegister(requestDuration, requestTotal, studentsGauge,
		professorsGauge, coursesGauge, enrollmentsTotal, gradesTotal)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		studentsGauge:    studentsGauge,
		professorsGauge:  professorsGauge,
		coursesGauge:     coursesGauge,
		enrollmentsTotal: enrollmentsTotal,
		gradesTotal:      gradesTotal,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one HTTP request observation.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := prometheus.Labels{
		"method": method,
		"path":   path,
		"status": strconv.Itoa(status),
	}
	s.requestDuration.With(labels).Observe(duration.Seconds())
	s.requestTotal.With(labels).Inc()
}

// SetStudentCount updates the registered students gauge.
func (s *MetricsService) SetStudentCount(n int) {
	if s == nil {
		return
	}
	s.studentsGauge.Set(float64(n))
}

// SetProfessorCount updates the registered professors gauge.
func (s *MetricsService) SetProfessorCount(n int) {
	if s == nil {
		return
	}
	s.professorsGauge.Set(float64(n))
}

// SetCourseCount updates the registered courses gauge.
func (s *MetricsService) SetCourseCount(n int) {
	if s == nil {
		return
	}
	s.coursesGauge.Set(float64(n))
}

// IncEnrollments counts a created enrollment.
func (s *MetricsService) IncEnrollments() {
	if s == nil {
		return
	}
	s.enrollmentsTotal.Inc()
}

// IncGradesRecorded counts a recorded grade.
func (s *MetricsService) IncGradesRecorded() {
	if s == nil {
		return
	}
	s.gradesTotal.Inc()
}
