package config

import "os"

// Environment variable names.
const (
	EnvRobotID  = "ROBOT_ID"
	EnvConfig   = "HOMEBOT_CONFIG"
	EnvLogLevel = "LOG_LEVEL"
	EnvPlanner  = "HOMEBOT_PLANNER"
)

// RobotID returns the robot ID from ROBOT_ID env var.
// Falls back to the provided default if not set.
func RobotID(defaultID string) string {
	return envOr(EnvRobotID, defaultID)
}

// PlannerKind returns the planner kind from HOMEBOT_PLANNER env var or default.
func PlannerKind(defaultKind string) string {
	return envOr(EnvPlanner, defaultKind)
}

// LogLevel returns the log level from LOG_LEVEL env var or default.
func LogLevel(defaultLevel string) string {
	return envOr(EnvLogLevel, defaultLevel)
}

// Path returns the config file path from HOMEBOT_CONFIG, or "".
func Path() string {
	return os.Getenv(EnvConfig)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
