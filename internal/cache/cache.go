// Package cache prunes stale files left in the application directories.
package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/vidmeta/vidmeta/filesystem"
	"github.com/vidmeta/vidmeta/log"
	"github.com/vidmeta/vidmeta/where"
)

// LogTTL is how long daily log files are kept.
const LogTTL = 7 * 24 * time.Hour

// Prune removes files in dir matching pattern that were last modified before
// now minus ttl. It returns the number of removed files.
func Prune(dir, pattern string, ttl time.Duration, now time.Time) (int, error) {
	fs := filesystem.API()

	matches, err := afero.Glob(fs, filepath.Join(dir, pattern))
	if err != nil {
		return 0, err
	}

	var removed int
	for _, path := range matches {
		info, err := fs.Stat(path)
		if err != nil || info.IsDir() || now.Sub(info.ModTime()) <= ttl {
			continue
		}

		if err := fs.Remove(path); err != nil && !os.IsNotExist(err) {
			return removed, err
		}
		removed++
	}

	return removed, nil
}

// CollectGarbage prunes expired log files and leftover temporary files.
func CollectGarbage() {
	now := time.Now()

	if n, err := Prune(where.Logs(), "*.log", LogTTL, now); err != nil {
		log.Warnf("failed to prune logs: %s", err)
	} else if n > 0 {
		log.Infof("pruned %d log files", n)
	}

	if _, err := Prune(where.Cache(), "*.tmp", time.Hour, now); err != nil {
		log.Warnf("failed to prune temporary files: %s", err)
	}
}
