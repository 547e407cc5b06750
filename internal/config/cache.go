package config

import "time"

// CacheConfig controls the short-TTL Redis cache applied to read-only
// dashboard endpoints (active leases, lease history). The TTL is kept
// small because occupancy changes on every acquire/release.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	Prefix  string
}

// LoadCacheConfig reads the cache settings from the environment.
func LoadCacheConfig() CacheConfig {
	cfg := CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 5*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Second
	}
	return cfg
}
