package observability

import "sync/atomic"

// RelayStats aggregates relay-wide counters for the telemetry worker.
// All counters are atomic; RelayStats is safe for concurrent use.
type RelayStats struct {
	DatagramsIn  uint64
	DatagramsOut uint64
	Broadcasts   uint64
	Dropped      uint64 // unknown-sender or unrecognized-tag datagrams
	SendErrors   uint64
	Joins        uint64
	Leaves       uint64
	Evictions    uint64
}

// StatsView is a point-in-time copy for logging.
type StatsView struct {
	DatagramsIn  uint64 `json:"datagrams_in"`
	DatagramsOut uint64 `json:"datagrams_out"`
	Broadcasts   uint64 `json:"broadcasts"`
	Dropped      uint64 `json:"dropped"`
	SendErrors   uint64 `json:"send_errors"`
	Joins        uint64 `json:"joins"`
	Leaves       uint64 `json:"leaves"`
	Evictions    uint64 `json:"evictions"`
}

func NewRelayStats() *RelayStats {
	return &RelayStats{}
}

func (s *RelayStats) IncrDatagramsIn() {
	atomic.AddUint64(&s.DatagramsIn, 1)
}

func (s *RelayStats) IncrDatagramsOut() {
	atomic.AddUint64(&s.DatagramsOut, 1)
}

func (s *RelayStats) IncrBroadcasts() {
	atomic.AddUint64(&s.Broadcasts, 1)
}

func (s *RelayStats) IncrDropped() {
	atomic.AddUint64(&s.Dropped, 1)
}

func (s *RelayStats) IncrSendErrors() {
	atomic.AddUint64(&s.SendErrors, 1)
}

func (s *RelayStats) IncrJoins() {
	atomic.AddUint64(&s.Joins, 1)
}

func (s *RelayStats) IncrLeaves() {
	atomic.AddUint64(&s.Leaves, 1)
}

func (s *RelayStats) IncrEvictions() {
	atomic.AddUint64(&s.Evictions, 1)
}

// Snapshot reads every counter atomically (individually, not as a set;
// the view is for logging, not accounting).
func (s *RelayStats) Snapshot() StatsView {
	return StatsView{
		DatagramsIn:  atomic.LoadUint64(&s.DatagramsIn),
		DatagramsOut: atomic.LoadUint64(&s.DatagramsOut),
		Broadcasts:   atomic.LoadUint64(&s.Broadcasts),
		Dropped:      atomic.LoadUint64(&s.Dropped),
		SendErrors:   atomic.LoadUint64(&s.SendErrors),
		Joins:        atomic.LoadUint64(&s.Joins),
		Leaves:       atomic.LoadUint64(&s.Leaves),
		Evictions:    atomic.LoadUint64(&s.Evictions),
	}
}
