package orchestration

import "time"

// Config controls which pipeline stages the orchestrator runs.
type Config struct {
	// SessionID scopes conversation context and preference tracking. Empty
	// means a fresh ID is generated per orchestrator.
	SessionID string

	EnableHistory         bool
	EnableCaching         bool
	EnableContext         bool
	EnablePatternLearning bool

	// CacheTTL is how long cached results stay fresh.
	CacheTTL time.Duration

	// MaxHistorySize bounds the in-memory history store when no persistent
	// store is supplied.
	MaxHistorySize int

	// ContextMaxHistory bounds how many conversation turns are tracked.
	ContextMaxHistory int
}

// DefaultConfig returns a config with every stage enabled.
func DefaultConfig() Config {
	return Config{
		EnableHistory:         true,
		EnableCaching:         true,
		EnableContext:         true,
		EnablePatternLearning: true,
		CacheTTL:              5 * time.Minute,
		MaxHistorySize:        100,
		ContextMaxHistory:     defaultContextMaxHistory,
	}
}

// withDefaults fills zero values that would otherwise disable a stage
// unintentionally.
func (c Config) withDefaults() Config {
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.MaxHistorySize < 1 {
		c.MaxHistorySize = 100
	}
	if c.ContextMaxHistory < 1 {
		c.ContextMaxHistory = defaultContextMaxHistory
	}
	return c
}
