package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"globalaccel/config"
)

// BlockShortcuts makes a daemon watching dir release all of its keys, or
// grab them again when block is false. The request is a marker file, so
// it also applies to a daemon started later.
func BlockShortcuts(dir string, block bool) error {
	path := filepath.Join(dir, config.BlockFileName)
	if !block {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to unblock shortcuts: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		return fmt.Errorf("failed to block shortcuts: %w", err)
	}
	return nil
}

// ShortcutsBlocked reports whether shortcuts in dir are blocked.
func ShortcutsBlocked(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, config.BlockFileName))
	return err == nil
}
