package feed

import (
	"context"
	"fmt"

	"github.com/danielorbach/go-component"
	"gocloud.dev/gcerrors"
	"gocloud.dev/pubsub"
)

// Handler processes one received change.
type Handler func(ctx context.Context, c Change) error

// Follow returns a component.Proc that receives changes from sub and passes
// each one to h until the component stops or sub is shut down. A failing
// handler stops the component, and so does a subscription that can no longer
// deliver messages.
func Follow(sub *pubsub.Subscription, h Handler) component.Proc {
	return func(l *component.L) {
		logger := component.Logger(l.Context())
		for l.Continue() {
			msg, err := sub.Receive(l.Context())
			if err != nil {
				if shuttingDown(err) || gcerrors.Code(err) == gcerrors.FailedPrecondition {
					return
				}
				l.Fatal(fmt.Errorf("receive: %w", err))
			}
			// always ack; a value that fails to decode will not decode on
			// redelivery either
			msg.Ack()

			c, err := Decode(msg)
			if err != nil {
				logger.Warn("Skipping undecodable change", "error", err)
				continue
			}
			if err := h(l.Context(), c); err != nil {
				l.Fatal(fmt.Errorf("process: %w", err))
			}
		}
	}
}
