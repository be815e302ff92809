package workers

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/observability"
	"chat-relay/runtime"
	"context"
	"log/slog"
	"time"
)

var _ contract.Worker = (*SweeperWorker)(nil)

// SweeperWorker evicts sessions whose last activity aged past the expiry
// threshold, on a fixed period independent of message traffic. Eviction
// is atomic inside the registry; the departure announcements go out
// afterwards, outside any lock.
type SweeperWorker struct {
	log      *slog.Logger
	registry contract.IRegistry
	router   *runtime.Router
	stats    *observability.RelayStats
	period   time.Duration
	expiry   time.Duration
	clock    func() time.Time
}

func NewSweeperWorker(
	log *slog.Logger,
	registry contract.IRegistry,
	router *runtime.Router,
	stats *observability.RelayStats,
	period, expiry time.Duration,
) *SweeperWorker {
	return &SweeperWorker{
		log:      log,
		registry: registry,
		router:   router,
		stats:    stats,
		period:   period,
		expiry:   expiry,
		clock:    time.Now,
	}
}

// WithClock swaps the time source, for tests.
func (w *SweeperWorker) WithClock(clock func() time.Time) *SweeperWorker {
	w.clock = clock
	return w
}

func (w *SweeperWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping sweeper")
			return nil
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one eviction cycle: one announcement per removed session.
func (w *SweeperWorker) Sweep() {
	expired := w.registry.RemoveExpired(w.clock(), w.expiry)
	for _, session := range expired {
		w.stats.IncrEvictions()
		w.log.Info("Session expired", "name", session.Name, "endpoint", session.Key,
			"last_active_at", session.LastActiveAt)
		w.router.Broadcast(domain.TimeoutLine(session.Name), session.Key)
	}
}
