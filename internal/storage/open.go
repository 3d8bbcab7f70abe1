package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	DriverJSONL  = "jsonl"
	DriverSQLite = "sqlite"
)

// DriverFor guesses the driver from the file extension.
func DriverFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return DriverSQLite
	default:
		return DriverJSONL
	}
}

// Open returns a recorder for driver, creating the journal if needed. An
// empty driver is inferred from the path.
func Open(driver, path string) (Recorder, error) {
	if driver == "" {
		driver = DriverFor(path)
	}
	switch driver {
	case DriverJSONL:
		return NewFileRecorder(path)
	case DriverSQLite:
		return NewSQLiteRecorder(path)
	default:
		return nil, fmt.Errorf("unknown journal driver: %s", driver)
	}
}

// OpenExisting is Open for readers: the journal must already exist.
func OpenExisting(driver, path string) (Recorder, error) {
	if driver == "" {
		driver = DriverFor(path)
	}
	switch driver {
	case DriverJSONL:
		return OpenFileRecorder(path)
	case DriverSQLite:
		return OpenSQLiteRecorder(path)
	default:
		return nil, fmt.Errorf("unknown journal driver: %s", driver)
	}
}
