package status

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"lumen/internal/clock"
)

// WifiProvider polls the association state by asking iwgetid for the
// current SSID. The tool exits nonzero when the interface is up but
// not associated, which is a definite Disconnected; a missing binary
// or a timeout leaves the state Unknown.
type WifiProvider struct {
	log     *slog.Logger
	timeout time.Duration
	runCmd  func(ctx context.Context) (string, error)
	last    ConnectivityState // only the polling goroutine touches this
	p       poller[WifiStatus]
}

// NewWifiProvider returns a provider polling every interval, spending
// at most timeout per probe.
func NewWifiProvider(clk clock.Clock, log *slog.Logger, interval, timeout time.Duration) *WifiProvider {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if timeout <= 0 {
		timeout = 200 * time.Millisecond
	}
	w := &WifiProvider{
		log:     log,
		timeout: timeout,
		runCmd:  commandRunner("iwgetid", "-r"),
	}
	w.p = poller[WifiStatus]{clk: clk, interval: interval, sample: w.sampleCmd}
	return w
}

// Run polls until ctx is cancelled.
func (w *WifiProvider) Run(ctx context.Context) { w.p.run(ctx) }

// Status returns the freshest reading, or the zero value (Unknown)
// when the source has gone stale.
func (w *WifiProvider) Status(now time.Time) WifiStatus {
	st, _ := w.p.cell.Get(now, w.p.maxAge())
	return st
}

func (w *WifiProvider) sampleCmd(ctx context.Context) WifiStatus {
	st := w.probe(ctx)
	if st.State != w.last {
		w.log.Info("wifi state changed", "state", st.State.String(), "ssid", st.SSID)
		w.last = st.State
	}
	return st
}

func (w *WifiProvider) probe(ctx context.Context) WifiStatus {
	cctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	out, err := w.runCmd(cctx)
	if cctx.Err() != nil {
		w.log.Debug("wifi probe timed out")
		return WifiStatus{}
	}
	ssid := strings.TrimSpace(out)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return WifiStatus{State: Disconnected}
		}
		w.log.Debug("wifi probe failed", "err", err)
		return WifiStatus{}
	}
	if ssid == "" {
		return WifiStatus{State: Disconnected}
	}
	return WifiStatus{State: Connected, SSID: ssid}
}

// commandRunner captures stdout of a short-lived system tool.
func commandRunner(name string, args ...string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		out, err := exec.CommandContext(ctx, name, args...).Output()
		return string(out), err
	}
}
