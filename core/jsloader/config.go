package jsloader

import "time"

// Config holds configuration for the script module loader.
type Config struct {
	// ContainerName is the global the entry script assigns its container to.
	// Empty means get/init are looked up on the global scope.
	ContainerName string `mapstructure:"container_name" default:""`
	// ScriptMaxBytes rejects larger entry scripts.
	ScriptMaxBytes int64 `mapstructure:"script_max_bytes" default:"5242880"`
	// ExecutionBudgetSeconds interrupts scripts running longer than this.
	ExecutionBudgetSeconds int `mapstructure:"execution_budget_seconds" default:"30"`
}

func (c Config) budget() time.Duration {
	if c.ExecutionBudgetSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.ExecutionBudgetSeconds) * time.Second
}

func (c Config) maxBytes() int64 {
	if c.ScriptMaxBytes <= 0 {
		return 5 << 20
	}
	return c.ScriptMaxBytes
}
