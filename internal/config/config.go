package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string

	DataDir       string
	BranchMapPath string
	DefaultCourse string

	PostgresDSN string

	ListenAddr  string
	CORSOrigins []string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DataDir:       getEnv("CET_DATA_DIR", filepath.Join(cwd, "data", "cutoffs")),
		BranchMapPath: getEnv("CET_BRANCH_MAP", filepath.Join(cwd, "data", "branch_map.yaml")),
		DefaultCourse: strings.ToLower(strings.TrimSpace(getEnv("CET_DEFAULT_COURSE", ""))),

		PostgresDSN: getEnv("CET_POSTGRES_DSN", ""),

		ListenAddr:  getEnv("CET_LISTEN_ADDR", ":8080"),
		CORSOrigins: getEnvList("CET_CORS_ORIGINS", []string{"http://localhost:3000"}),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value := getEnv(key, "")
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
