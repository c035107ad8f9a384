// internal/workers/eligibility/rank-results/config.go
package rankresults

import "time"

type Config struct {
	MaxItems int
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxItems: 50,
		Timeout:  10 * time.Second,
	}
}
