// Example: a tiny session server that owns every per-session resource
// through a lifecycle.Registry and throttles new sessions per client with
// ratelimit. Ctrl+C releases everything exactly once.
package main

import (
	"context"
	"fmt"
	"time"

	lifecycle "github.com/lif0/go-lifecycle"
	"github.com/lif0/go-lifecycle/ratelimit"
)

type subscription struct {
	topic string
}

func (s *subscription) Disconnect() {
	fmt.Printf("disconnected from %s\n", s.topic)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	admit, err := ratelimit.NewSlidingWindow[string](5, time.Second)
	if err != nil {
		panic(err)
	}

	for _, client := range []string{"alice", "bob", "alice"} {
		if !admit.Allow(client) {
			fmt.Printf("client %s throttled\n", client)
			continue
		}
		openSession(client)
	}

	// release all sessions on SIGINT/SIGTERM
	lifecycle.CleanOnSignal(ctx)
	lifecycle.Default().Wait()
}

func openSession(client string) {
	sub := &subscription{topic: "events/" + client}
	lifecycle.MustAdd(sub)

	token, err := lifecycle.Add(func() {
		fmt.Printf("session state for %s flushed\n", client)
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("session for %s open (token %s)\n", client, token.ID())
}
