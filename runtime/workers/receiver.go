package workers

import (
	"chat-relay/contract"
	"chat-relay/errors"
	"chat-relay/runtime"
	"context"
	gerrors "errors"
	"log/slog"
	"time"
)

// Ensure *ReceiverWorker implements the contract.Worker interface at compile time.
var _ contract.Worker = (*ReceiverWorker)(nil)

// ReceiverWorker is the relay's single receive loop. It polls the
// transport with a short timeout so cancellation is noticed promptly,
// and hands every datagram to the router serially.
type ReceiverWorker struct {
	log         *slog.Logger
	transport   contract.Transport
	router      *runtime.Router
	pollTimeout time.Duration
}

func NewReceiverWorker(
	log *slog.Logger,
	transport contract.Transport,
	router *runtime.Router,
	pollTimeout time.Duration,
) *ReceiverWorker {
	return &ReceiverWorker{
		log:         log,
		transport:   transport,
		router:      router,
		pollTimeout: pollTimeout,
	}
}

func (w *ReceiverWorker) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			w.log.Debug("Stopping receive loop")
			return nil
		}

		payload, from, err := w.transport.Receive(w.pollTimeout)
		if err != nil {
			if gerrors.Is(err, errors.ErrReceiveTimeout) {
				// Quiet period; loop back to check cancellation.
				continue
			}
			if gerrors.Is(err, errors.ErrTransportClosed) || ctx.Err() != nil {
				return nil
			}
			// Receive failures are never fatal to the relay.
			w.log.Warn("Receive failed", "error", err)
			continue
		}

		w.router.HandleDatagram(payload, from)
	}
}
