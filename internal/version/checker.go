package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arangotui/arangotui/internal/types"
)

// Set via -ldflags at build time
var (
	Version = "dev"
	Commit  = "none"
)

// MinServerVersion is the oldest ArangoDB release whose collection, gharial
// and cursor endpoints match what the browser reads
const MinServerVersion = "3.10.0"

// String returns the build version line
func String() string {
	return fmt.Sprintf("arangotui %s (%s)", Version, Commit)
}

// CheckServer reports whether the server release is supported.
// The returned message is meant for the status bar when it is not.
func CheckServer(v types.ServerVersion) (supported bool, message string) {
	if v.Server != "" && v.Server != "arango" {
		return false, fmt.Sprintf("unexpected server %q, expected arango", v.Server)
	}
	if len(parseVersion(v.Version)) == 0 {
		return false, fmt.Sprintf("unparseable server version %q", v.Version)
	}
	if isNewerVersion(MinServerVersion, v.Version) {
		return false, fmt.Sprintf("ArangoDB %s is older than %s, some views may fail", v.Version, MinServerVersion)
	}
	return true, ""
}

// isNewerVersion compares two semantic versions and returns true if latest > current
// Supports versions like "3.11.4", "3.12.0-devel", "3.12.1+build", etc.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	// Pad shorter version with zeros
	maxLen := max(len(latestParts), len(currentParts))
	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	for i := 0; i < maxLen; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}

	return false
}

// parseVersion parses a version string into integer parts
// Handles pre-release versions by stripping everything after "-" or "+"
func parseVersion(version string) []int {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		result = append(result, num)
	}

	return result
}
