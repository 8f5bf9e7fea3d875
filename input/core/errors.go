package core

import "errors"

// Sentinel errors shared across packages. Callers branch with errors.Is;
// everything else is wrapped ad hoc with fmt.Errorf at the call site.
var (
	// ErrConfigNotFound means the tuning file does not exist. Callers
	// usually fall back to defaults rather than failing.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrNotInitialized means a component was used before Startup.
	ErrNotInitialized = errors.New("not initialized")
)
