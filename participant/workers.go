package participant

import (
	"chat-relay/contract"
	"chat-relay/errors"
	"context"
	gerrors "errors"
	"log/slog"
	"time"
)

var _ contract.Worker = (*ReceiveWorker)(nil)
var _ contract.Worker = (*KeepaliveWorker)(nil)

// ReceiveWorker renders broadcast text while the user composes input.
// It polls with a short timeout so shutdown is noticed promptly rather
// than blocking forever on a quiet channel.
type ReceiveWorker struct {
	log         *slog.Logger
	transport   contract.Transport
	renderer    *Renderer
	pollTimeout time.Duration
}

func NewReceiveWorker(
	log *slog.Logger,
	transport contract.Transport,
	renderer *Renderer,
	pollTimeout time.Duration,
) *ReceiveWorker {
	return &ReceiveWorker{
		log:         log,
		transport:   transport,
		renderer:    renderer,
		pollTimeout: pollTimeout,
	}
}

func (w *ReceiveWorker) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			w.log.Debug("Stopping receive loop")
			return nil
		}

		payload, _, err := w.transport.Receive(w.pollTimeout)
		if err != nil {
			if gerrors.Is(err, errors.ErrReceiveTimeout) {
				continue
			}
			if gerrors.Is(err, errors.ErrTransportClosed) || ctx.Err() != nil {
				return nil
			}
			w.log.Warn("Receive failed", "error", err)
			continue
		}

		w.renderer.Render(payload)
	}
}

// KeepaliveWorker pings the relay on a fixed period so the sweeper never
// expires a participant who is silently reading.
type KeepaliveWorker struct {
	log      *slog.Logger
	session  *Session
	interval time.Duration
}

func NewKeepaliveWorker(log *slog.Logger, session *Session, interval time.Duration) *KeepaliveWorker {
	return &KeepaliveWorker{log: log, session: session, interval: interval}
}

func (w *KeepaliveWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping keepalives")
			return nil
		case <-ticker.C:
			if err := w.session.Ping(); err != nil {
				w.log.Warn("Keepalive not delivered", "error", err)
			}
		}
	}
}
