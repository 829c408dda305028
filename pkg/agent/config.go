package agent

import "time"

// Config holds agent configuration
type Config struct {
	// LLM settings
	Model       string  `yaml:"model" json:"model"`
	MaxTokens   int     `yaml:"maxTokens" json:"maxTokens"`
	Temperature float64 `yaml:"temperature" json:"temperature"`

	// MaxTurns bounds the decide-act loop. The loop never runs
	// unconstrained waiting for the model to answer.
	MaxTurns int `yaml:"maxTurns" json:"maxTurns"`

	// AnswerRetries is how many malformed final answers are re-fed to
	// the model with a correction before a degraded summary is returned.
	AnswerRetries int `yaml:"answerRetries" json:"answerRetries"`

	// HistoryWindow is the retention window: older messages are evicted
	// front-first before each cycle so history never exceeds it.
	HistoryWindow int `yaml:"historyWindow" json:"historyWindow"`

	// Timeouts
	RequestTimeout time.Duration `yaml:"requestTimeout" json:"requestTimeout"`
	ToolTimeout    time.Duration `yaml:"toolTimeout" json:"toolTimeout"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Model:          "gpt-4o-mini",
		MaxTokens:      4096,
		Temperature:    0,
		MaxTurns:       10,
		AnswerRetries:  2,
		HistoryWindow:  10,
		RequestTimeout: 60 * time.Second,
		ToolTimeout:    30 * time.Second,
	}
}

// WithModel sets the model
func (c Config) WithModel(model string) Config {
	c.Model = model
	return c
}

// WithMaxTurns sets max turns for the agent loop
func (c Config) WithMaxTurns(turns int) Config {
	c.MaxTurns = turns
	return c
}

// WithHistoryWindow sets the conversation retention window
func (c Config) WithHistoryWindow(n int) Config {
	c.HistoryWindow = n
	return c
}

// WithAnswerRetries sets the malformed-answer retry budget
func (c Config) WithAnswerRetries(n int) Config {
	c.AnswerRetries = n
	return c
}
