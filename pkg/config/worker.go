package config

import "fmt"

// WorkerConfig holds the sizing of the background worker pool.
// CoreSize workers run for the lifetime of the pool; up to MaxSize
// workers may exist while the queue is saturated.
type WorkerConfig struct {
	CoreSize      int    `koanf:"coreSize"`
	MaxSize       int    `koanf:"maxSize"`
	QueueCapacity int    `koanf:"queueCapacity"`
	NamePrefix    string `koanf:"namePrefix"`
}

func (c *WorkerConfig) Validate() error {
	if c.CoreSize <= 0 {
		return fmt.Errorf("invalid worker pool core size: %d", c.CoreSize)
	}
	if c.MaxSize < c.CoreSize {
		return fmt.Errorf("worker pool max size %d is smaller than core size %d", c.MaxSize, c.CoreSize)
	}
	if c.QueueCapacity < 0 {
		return fmt.Errorf("invalid worker pool queue capacity: %d", c.QueueCapacity)
	}
	return nil
}
