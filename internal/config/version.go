package config

import (
	"os"
	"runtime/debug"
	"strings"
)

// version is set at build time with -ldflags "-X renewcalc/internal/config.version=..."
var version string

const fallbackVersion = "0.1.0"

// GetVersion returns the service version. APP_VERSION wins, then the linker
// stamped version, then the module version from build info, then a VERSION
// file in the working directory.
func GetVersion() string {
	if v := strings.TrimSpace(os.Getenv("APP_VERSION")); v != "" {
		return v
	}
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return readVersionFile("VERSION")
}

func readVersionFile(path string) string {
	content, err := os.ReadFile(path)
	if err != nil {
		return fallbackVersion
	}
	if v := strings.TrimSpace(string(content)); v != "" {
		return v
	}
	return fallbackVersion
}
