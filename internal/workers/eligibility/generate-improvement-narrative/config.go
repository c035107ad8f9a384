// internal/workers/eligibility/generate-improvement-narrative/config.go
package generateimprovementnarrative

import "time"

type Config struct {
	GenAIBaseURL string
	Timeout      time.Duration
	MaxRetries   int
	MaxTokens    int
	Temperature  float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		MaxRetries:  2,
		MaxTokens:   800,
		Temperature: 0.4,
	}
}
