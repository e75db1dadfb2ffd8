package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS     CORSConfig
	Log      LogConfig
	Academic AcademicConfig
	Reports  ReportsConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AcademicConfig carries the grading and ranking tunables.
type AcademicConfig struct {
	PassingGrade    float64
	RiskThreshold   float64
	RankingLimit    int
	MinStudentAge   int
	MinProfessorAge int
	GradeScaleFloor float64
	GradeScaleCeil  float64
}

// ReportsConfig controls report rendition exposure.
type ReportsConfig struct {
	ExportsEnabled bool
	Institution    string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Academic = AcademicConfig{
		PassingGrade:    v.GetFloat64("PASSING_GRADE"),
		RiskThreshold:   v.GetFloat64("RISK_THRESHOLD"),
		RankingLimit:    v.GetInt("RANKING_LIMIT"),
		MinStudentAge:   v.GetInt("MIN_STUDENT_AGE"),
		MinProfessorAge: v.GetInt("MIN_PROFESSOR_AGE"),
		GradeScaleFloor: v.GetFloat64("GRADE_SCALE_FLOOR"),
		GradeScaleCeil:  v.GetFloat64("GRADE_SCALE_CEIL"),
	}

	cfg.Reports = ReportsConfig{
		ExportsEnabled: v.GetBool("ENABLE_REPORT_EXPORTS"),
		Institution:    v.GetString("REPORTS_INSTITUTION_NAME"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PASSING_GRADE", 7.0)
	v.SetDefault("RISK_THRESHOLD", 7.0)
	v.SetDefault("RANKING_LIMIT", 10)
	v.SetDefault("MIN_STUDENT_AGE", 15)
	v.SetDefault("MIN_PROFESSOR_AGE", 25)
	v.SetDefault("GRADE_SCALE_FLOOR", 0.0)
	v.SetDefault("GRADE_SCALE_CEIL", 10.0)

	v.SetDefault("ENABLE_REPORT_EXPORTS", true)
	v.SetDefault("REPORTS_INSTITUTION_NAME", "Universidad")
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
