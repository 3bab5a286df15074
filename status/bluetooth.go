package status

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"lumen/internal/clock"
)

// BluetoothProvider polls adapter power state through hciconfig. An
// adapter reporting UP RUNNING counts as Connected, any other clean
// output as Disconnected. Probe failures leave the state Unknown.
type BluetoothProvider struct {
	log     *slog.Logger
	timeout time.Duration
	runCmd  func(ctx context.Context) (string, error)
	last    ConnectivityState // only the polling goroutine touches this
	p       poller[ConnectivityState]
}

// NewBluetoothProvider returns a provider polling every interval,
// spending at most timeout per probe.
func NewBluetoothProvider(clk clock.Clock, log *slog.Logger, interval, timeout time.Duration) *BluetoothProvider {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if timeout <= 0 {
		timeout = 200 * time.Millisecond
	}
	b := &BluetoothProvider{
		log:     log,
		timeout: timeout,
		runCmd:  commandRunner("hciconfig"),
	}
	b.p = poller[ConnectivityState]{clk: clk, interval: interval, sample: b.sampleCmd}
	return b
}

// Run polls until ctx is cancelled.
func (b *BluetoothProvider) Run(ctx context.Context) { b.p.run(ctx) }

// Status returns the freshest reading, or Unknown when the source has
// gone stale.
func (b *BluetoothProvider) Status(now time.Time) ConnectivityState {
	st, _ := b.p.cell.Get(now, b.p.maxAge())
	return st
}

func (b *BluetoothProvider) sampleCmd(ctx context.Context) ConnectivityState {
	st := b.probe(ctx)
	if st != b.last {
		b.log.Info("bluetooth state changed", "state", st.String())
		b.last = st
	}
	return st
}

func (b *BluetoothProvider) probe(ctx context.Context) ConnectivityState {
	cctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	out, err := b.runCmd(cctx)
	if cctx.Err() != nil {
		b.log.Debug("bluetooth probe timed out")
		return Unknown
	}
	if err != nil {
		b.log.Debug("bluetooth probe failed", "err", err)
		return Unknown
	}
	if strings.Contains(out, "UP RUNNING") {
		return Connected
	}
	return Disconnected
}
