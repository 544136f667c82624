package lifecycle

import (
	"context"
	"os"
	"sync"

	"github.com/lif0/pkg/concurrency/chanx"
	"github.com/lif0/pkg/utils/errx"

	"github.com/lif0/go-lifecycle/internal"
)

// GlobalErrors collects cleanup errors from signal-triggered cleanup of
// the default registry.
var GlobalErrors = internal.NewSyncObject(errx.MultiError{})

// CleanOnSignal sets up a trigger for cleanup of the default registry.
//
// This global function takes a context for cancellation; if the context
// is canceled, the trigger will not activate, and the function simply
// returns. It accepts options to specify signals or channels that will
// trigger the cleanup. The first signal cleans the default registry once;
// any further signal forces exit.
func CleanOnSignal(ctx context.Context, opts ...TriggerOption) {
	c := newDefaultTriggerConfig()
	for _, opt := range opts {
		opt(c)
	}

	go func() {
		var once sync.Once // ensures registry cleanup is attempted only once
		var cleaned bool

		// a nil channel blocks forever, keeping the select on signals only
		var singleUserChan <-chan struct{}
		if len(c.usrch) > 0 {
			singleUserChan = chanx.FanIn(ctx, c.usrch...)
		}

		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-c.sysch:
				defaultLogger.Infof("lifecycle: received system signal - %s", sig.String())
			case _, ok := <-singleUserChan:
				if !ok {
					// closed user channels count as the trigger, once
					singleUserChan = nil
				}
				defaultLogger.Info("lifecycle: received user trigger")
			}

			if cleaned {
				// Second or subsequent signal: force exit
				defaultLogger.Warn("lifecycle: received additional signal - forcing exit")
				os.Exit(1)
			}
			cleaned = true

			once.Do(func() {
				if err := defaultRegistry.CleanUp(); err != nil {
					GlobalErrors.Mutate(func(v *errx.MultiError) {
						v.Append(err)
					})
				}
				defaultLogger.Info("lifecycle: registry cleanup completed, use lifecycle.GlobalErrors to check errors")
			})
		}
	}()
}
