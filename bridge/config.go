package bridge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-loadable driver configuration.
//
// Example:
//
//	queue_capacity: 256
//	stage_queue_capacities:
//	  fixed_update: 64
//	  last: 0
//
// Capacities bound the pending queues; 0 means unbounded. Stage keys use the
// snake_case names from Stage.String.
type Config struct {
	// QueueCapacity bounds every stage queue unless overridden below.
	QueueCapacity int `yaml:"queue_capacity"`

	// StageQueueCapacities overrides the bound for individual stages.
	StageQueueCapacities map[string]int `yaml:"stage_queue_capacities,omitempty"`
}

// LoadConfig reads and validates a YAML driver configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks capacities and stage names.
func (c *Config) Validate() error {
	if c.QueueCapacity < 0 {
		return fmt.Errorf("queue_capacity must be >= 0, got %d", c.QueueCapacity)
	}
	for name, capacity := range c.StageQueueCapacities {
		if _, err := ParseStage(name); err != nil {
			return fmt.Errorf("stage_queue_capacities: %w", err)
		}
		if capacity < 0 {
			return fmt.Errorf("stage_queue_capacities[%s] must be >= 0, got %d", name, capacity)
		}
	}
	return nil
}

// Options converts the config into driver options for NewDriver.
func (c *Config) Options() ([]DriverOption, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	opts := []DriverOption{WithQueueCapacity(c.QueueCapacity)}
	for name, capacity := range c.StageQueueCapacities {
		stage, err := ParseStage(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithStageQueueCapacity(stage, capacity))
	}
	return opts, nil
}
