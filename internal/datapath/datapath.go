// Package datapath resolves files under the process-wide data directory,
// which holds render templates and texture assets shared by all scenes.
package datapath

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const defaultDir = "data"

var (
	mu  sync.RWMutex
	dir = defaultDir
)

// SetDataPath changes the data directory for the whole process.
func SetDataPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	dir = path
}

// GetDataPath returns the current data directory.
func GetDataPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return dir
}

// GetDataFile resolves a path relative to the data directory.
func GetDataFile(rel string) string {
	return filepath.Join(GetDataPath(), rel)
}

// MustExist resolves rel against the data directory and verifies the file is
// present, returning its absolute-ish path.
func MustExist(rel string) (string, error) {
	p := GetDataFile(rel)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("data file %s: %w", rel, err)
	}
	return p, nil
}

// Reset restores the default data directory (test helper).
func Reset() {
	SetDataPath(defaultDir)
}
