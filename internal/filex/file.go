// Package filex resolves and prepares the client's on-disk locations.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDir returns $XDG_CONFIG_HOME/<app>, falling back to
// ~/.config/<app>. When no home directory can be determined the current
// directory is used.
func DefaultDataDir(app string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, app)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return app
	}
	return filepath.Join(home, ".config", app)
}

// EnsureDir creates dir (and parents) with owner-only permissions and
// returns its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}
