package journal

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// SchemaVersion is the journal record layout version written into new
// journal databases.
const SchemaVersion = "v1.0.0"

// IsCompatibleVersion checks whether a journal written under storedVersion
// can be read by code at currentVersion. Major versions must match exactly;
// minor and patch versions may differ.
func IsCompatibleVersion(storedVersion, currentVersion string) (bool, error) {
	if !semver.IsValid(storedVersion) {
		return false, fmt.Errorf("invalid stored schema version: %s", storedVersion)
	}
	if !semver.IsValid(currentVersion) {
		return false, fmt.Errorf("invalid current schema version: %s", currentVersion)
	}

	return semver.Major(storedVersion) == semver.Major(currentVersion), nil
}
