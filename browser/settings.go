package browser

// Settings holds browser process configuration consumed by an engine
// backend. The zero value selects the engine defaults.
type Settings struct {
	// Locale passed to the engine. Empty selects the default "en-US".
	Locale string

	// CachePath is the directory for the global browser cache. If
	// non-empty it must be an absolute path equal to or under
	// RootCachePath. Empty means "incognito mode": in-memory caches and
	// no profile data persisted to disk.
	CachePath string

	// RootCachePath is the root directory for installation-specific data
	// and the parent of profile-specific data. Empty selects the engine's
	// platform default; sharing one root between application instances
	// can corrupt it.
	RootCachePath string

	// BrowserSubprocessPath is a separate executable launched for
	// engine sub-processes. If set it must be an absolute path; if empty
	// the main process executable is used where the platform allows it.
	BrowserSubprocessPath string
}
