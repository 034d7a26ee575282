// Package paths provides sudo-aware home directory resolution.
//
// When running with sudo, "~" in configured paths should resolve to the
// original user's home (via SUDO_USER) instead of root's.
package paths

import (
	"os"
	"os/user"
)

// UserHomeDir returns the home directory of the actual user.
// If running with sudo, returns the SUDO_USER's home directory, not root's.
func UserHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		u, err := user.Lookup(sudoUser)
		if err == nil {
			return u.HomeDir, nil
		}
		// Fall through if lookup fails
	}

	return os.UserHomeDir()
}
