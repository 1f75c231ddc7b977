package config

import (
	"os"
	"strconv"
	"time"
)

const (
	appNameVar     = "APP_NAME"
	baseURLVar     = "API_BASE_URL"
	folderEnvVar   = "FOLDER"
	httpTimeoutVar = "HTTP_TIMEOUT_SECONDS"
)

const defaultHTTPTimeout = 30 * time.Second

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "StoneRidge Marketplace")
}

// GetBaseURL returns the base URL of the marketplace API, including the
// /api prefix (e.g. "http://localhost:8080/api").
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080/api")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetHTTPTimeout() time.Duration {
	seconds, err := strconv.Atoi(GetEnv(httpTimeoutVar, ""))
	if err != nil || seconds <= 0 {
		return defaultHTTPTimeout
	}
	return time.Duration(seconds) * time.Second
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
