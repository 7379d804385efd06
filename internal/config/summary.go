package config

import "os"

// SummaryConfig holds configuration for the external meeting summarizer.
type SummaryConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	TimeoutMS int    `json:"timeoutMs"`
}

// DefaultSummaryConfig returns the default summarizer configuration.
// When no API key is set, the server falls back to its local extractive
// summarizer instead of calling out.
func DefaultSummaryConfig() *SummaryConfig {
	return &SummaryConfig{
		APIKey:    os.Getenv("OPENAI_API_KEY"),
		BaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Model:     getEnv("SUMMARY_MODEL", "gpt-4o-mini"),
		TimeoutMS: 15000,
	}
}

// IsEnabled returns true if the summary API is configured.
func (c *SummaryConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Endpoint returns the chat completions endpoint.
func (c *SummaryConfig) Endpoint() string {
	return c.BaseURL + "/chat/completions"
}
