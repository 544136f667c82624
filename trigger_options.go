package lifecycle

import (
	"os"
	"os/signal"
	"syscall"
)

// triggerConfig represents the configuration for cleanup triggers.
type triggerConfig struct {
	sysch <-chan os.Signal
	usrch []<-chan struct{}
}

type TriggerOption func(*triggerConfig)

// WithCustomSystemSignal adds a custom OS signal channel
//
// Example:
//
//	ch := make(chan os.Signal, 1)
//	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, ...other signals)
//	lifecycle.CleanOnSignal(ctx, lifecycle.WithCustomSystemSignal(ch))
func WithCustomSystemSignal(ch chan os.Signal) TriggerOption {
	return func(c *triggerConfig) {
		c.sysch = ch
	}
}

// WithSysSignal adds default OS signal handling for registry cleanup
//
// SIGINT (Signal Interrupt) - Typically sent when user presses Ctrl+C
// SIGTERM (Signal Terminate) - Polite request to terminate the program (e.g., from Docker or Kubernetes).
//
// Example:
//
//	lifecycle.CleanOnSignal(ctx, lifecycle.WithSysSignal())
func WithSysSignal() TriggerOption {
	return func(c *triggerConfig) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

		c.sysch = ch
	}
}

// WithUserChanSignal adds custom user channels that will trigger registry
// cleanup when closed. Useful for custom release conditions beyond OS
// signals.
func WithUserChanSignal(uch ...<-chan struct{}) TriggerOption {
	return func(c *triggerConfig) {
		c.usrch = uch
	}
}

// newDefaultTriggerConfig create default config
func newDefaultTriggerConfig() *triggerConfig {
	config := &triggerConfig{}
	WithSysSignal()(config)

	return config
}
