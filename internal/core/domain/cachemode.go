package domain

import "go.trai.ch/zerr"

// CacheMode selects which cache tiers are consulted and written.
type CacheMode string

const (
	// CacheModeDisabled never hits and never stores.
	CacheModeDisabled CacheMode = "false"
	// CacheModeLocal operates only against the local cache root.
	CacheModeLocal CacheMode = "local"
	// CacheModeCloud operates only against the remote object store.
	CacheModeCloud CacheMode = "cloud"
	// CacheModeDev reads local-first with cloud fallback and writes to both tiers.
	CacheModeDev CacheMode = "dev"
)

// ParseCacheMode converts a user-supplied string into a CacheMode.
// The empty string resolves to the default mode.
func ParseCacheMode(s string) (CacheMode, error) {
	switch s {
	case "":
		return DefaultCacheMode, nil
	case string(CacheModeDisabled), string(CacheModeLocal), string(CacheModeCloud), string(CacheModeDev):
		return CacheMode(s), nil
	default:
		return "", zerr.With(ErrInvalidCacheMode, "mode", s)
	}
}

// DefaultCacheMode is used when neither the configuration nor the CLI selects a mode.
const DefaultCacheMode = CacheModeDev
