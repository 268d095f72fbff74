package godot

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// minUIDVersion is the first engine release with resource UIDs.
const minUIDVersion = "v4.4"

// versionPattern matches the leading numeric component of Godot's --version
// output, e.g. "4.2.1.stable.official.b09f793f5" or "4.4.dev2.official".
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts the engine version from raw --version output and
// returns it in canonical semver form with a leading "v" (e.g. "v4.2.1").
// Missing patch components are filled with zero.
func ParseVersion(output string) (string, error) {
	trimmed := strings.TrimSpace(output)
	// --version output may be preceded by driver warnings; take the last
	// non-empty line, which carries the version string.
	lines := strings.Split(trimmed, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		m := versionPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		patch := m[3]
		if patch == "" {
			patch = "0"
		}
		v := fmt.Sprintf("v%s.%s.%s", m[1], m[2], patch)
		if !semver.IsValid(v) {
			return "", fmt.Errorf("invalid godot version %q", line)
		}
		return v, nil
	}
	return "", fmt.Errorf("no version found in output %q", trimmed)
}

// SupportsUIDs reports whether version (as returned by ParseVersion) is an
// engine release that understands resource UIDs (4.4 and later).
func SupportsUIDs(version string) bool {
	return semver.IsValid(version) && semver.Compare(version, minUIDVersion) >= 0
}
