package scaffold

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// checkNodeVersion compares the output of `node --version` with the minimum
func checkNodeVersion(output, minimum string) error {
	version := strings.TrimSpace(output)
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("unrecognized node version %q", strings.TrimSpace(output))
	}
	if minimum == "" {
		return nil
	}
	if semver.Compare(version, minimum) < 0 {
		return fmt.Errorf("%w: found %s, need %s or newer", ErrNodeTooOld, version, minimum)
	}
	return nil
}
