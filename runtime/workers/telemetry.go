package workers

import (
	"chat-relay/contract"
	"chat-relay/observability"
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/process"
)

var _ contract.Worker = (*TelemetryWorker)(nil)

// TelemetryWorker periodically logs relay counters together with the
// process's own resource usage, and can dump the current roster as a
// table for the operator watching the relay console.
type TelemetryWorker struct {
	log        *slog.Logger
	registry   contract.IRegistry
	stats      *observability.RelayStats
	interval   time.Duration
	rosterDump bool
	out        io.Writer
}

func NewTelemetryWorker(
	log *slog.Logger,
	registry contract.IRegistry,
	stats *observability.RelayStats,
	interval time.Duration,
	rosterDump bool,
) *TelemetryWorker {
	return &TelemetryWorker{
		log:        log,
		registry:   registry,
		stats:      stats,
		interval:   interval,
		rosterDump: rosterDump,
		out:        os.Stdout,
	}
}

func (w *TelemetryWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			rss, cpu, err := getSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			view := w.stats.Snapshot()
			w.log.Info("Relay stats",
				"sessions", w.registry.Len(),
				"datagrams_in", view.DatagramsIn,
				"datagrams_out", view.DatagramsOut,
				"broadcasts", view.Broadcasts,
				"dropped", view.Dropped,
				"send_errors", view.SendErrors,
				"evictions", view.Evictions,
				"rss_bytes", rss,
				"cpu_percent", cpu,
			)

			if w.rosterDump {
				w.dumpRoster()
			}
		}
	}
}

// dumpRoster renders the current sessions for the operator.
func (w *TelemetryWorker) dumpRoster() {
	table := tablewriter.NewWriter(w.out)
	table.SetHeader([]string{"Name", "Endpoint", "Idle"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	now := time.Now()
	for _, session := range w.registry.Snapshot() {
		table.Append([]string{
			session.Name,
			session.Key,
			now.Sub(session.LastActiveAt).Round(time.Second).String(),
		})
	}
	table.Render()
}

// getSelfStats retrieves memory and CPU usage for the given process.
func getSelfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
