package config

import (
	"time"

	"github.com/spf13/viper"
)

// GetServerURL returns the planning service base URL.
func GetServerURL() string {
	return viper.GetString("api.base_url")
}

// GetRequestTimeout returns the per-request timeout.
func GetRequestTimeout() time.Duration {
	return time.Duration(viper.GetInt("api.timeout_ms")) * time.Millisecond
}

// GetHistoryLimit returns the undo stack bound.
func GetHistoryLimit() int {
	return viper.GetInt("history.limit")
}

// GetToastDuration returns how long notifications stay visible.
func GetToastDuration() time.Duration {
	return time.Duration(viper.GetInt("toast.duration_ms")) * time.Millisecond
}

// GetRollbackOnFailure reports whether a failed sync reverts the local
// store to the pre-edit snapshot.
func GetRollbackOnFailure() bool {
	return viper.GetBool("sync.rollback_on_failure")
}

// GetProjectFile returns the project file name.
func GetProjectFile() string {
	return viper.GetString("project.file")
}

// GetServeAddr returns the dev server listen address.
func GetServeAddr() string {
	return viper.GetString("serve.addr")
}

// GetServeDB returns the dev server database path.
func GetServeDB() string {
	return viper.GetString("serve.db")
}
