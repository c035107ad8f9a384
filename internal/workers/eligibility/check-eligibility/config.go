// internal/workers/eligibility/check-eligibility/config.go
package checkeligibility

import "time"

type Config struct {
	ProfileCacheTTL time.Duration
	CatalogLimit    int
	Timeout         time.Duration
}

func LoadConfig() *Config {
	return &Config{
		ProfileCacheTTL: 15 * time.Minute,
		CatalogLimit:    500,
		Timeout:         30 * time.Second,
	}
}
