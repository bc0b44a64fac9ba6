package task

import "github.com/google/uuid"

type config struct {
	name string
	lazy bool
}

// Option configures a task at build time.
type Option func(*config)

func defaultConfig() config {
	return config{
		name: uuid.NewString(),
	}
}

// WithName names the task. The default is a fresh uuid.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLazyStart defers launching the task until Start, Await or Outcome
// is called. By default Build starts the task immediately.
func WithLazyStart() Option {
	return func(c *config) {
		c.lazy = true
	}
}
