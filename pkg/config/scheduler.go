package config

import (
	"fmt"
	"time"
)

// SchedulerConfig holds the settings of the periodic task trigger.
type SchedulerConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

func (c *SchedulerConfig) Validate() error {
	if c.Enabled && c.Interval <= 0 {
		return fmt.Errorf("scheduler is enabled but interval is not configured: %v", c.Interval)
	}
	return nil
}
