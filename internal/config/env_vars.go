package config

import (
	"os"
	"path/filepath"
)

const (
	baseURLVar = "BASE_URL"
	appNameVar = "APP_NAME"
	folderVar  = "FOLDER"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetBaseURL returns the base URL of the storefront backend
// (e.g., "http://localhost:8080"). All API paths are resolved against it.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Cookie Shop")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderVar, "./data")
}

// GetTokenFile returns the path of the local key-value store that holds the
// bearer token between runs (the browser localStorage analog).
func (e EnvVars) GetTokenFile() string {
	return GetEnv("TOKEN_FILE", filepath.Join(e.GetDataFolder(), "session.json"))
}

// GetNotificationPollInterval returns the notification refresh interval as a
// duration string. The backend pushes nothing; the client polls.
func (EnvVars) GetNotificationPollInterval() string {
	return GetEnv("NOTIFICATION_POLL_INTERVAL", "30s")
}

func (EnvVars) GetRequestTimeout() string {
	return GetEnv("REQUEST_TIMEOUT", "15s")
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
