// internal/workers/notification/send-eligibility-alert/config.go
package sendeligibilityalert

import "time"

type Config struct {
	EmailEnabled       bool
	SMSEnabled         bool
	FromEmail          string
	AWSRegion          string
	HighValueThreshold float64
	Timeout            time.Duration
}

func LoadConfig() *Config {
	return &Config{
		HighValueThreshold: 20000,
		Timeout:            30 * time.Second,
	}
}
