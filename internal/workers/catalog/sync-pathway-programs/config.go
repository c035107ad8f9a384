// internal/workers/catalog/sync-pathway-programs/config.go
package syncpathwayprograms

import "time"

type Config struct {
	Timeout  time.Duration
	MaxPages int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  2 * time.Minute,
		MaxPages: 20,
	}
}
