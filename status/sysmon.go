package status

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"

	"lumen/internal/clock"
)

// cpuHistoryKeep is the raw sample ring length. At the default 1 s
// cadence it spans ten minutes.
const cpuHistoryKeep = 600

// SysProvider polls host health through gopsutil. It also keeps a CPU
// load ring that each published reading carries in downsampled form.
// The ring is owned by the polling goroutine and never locked.
type SysProvider struct {
	log      *slog.Logger
	diskPath string
	hostname string
	hist     [cpuHistoryKeep]float64
	histPos  int
	histN    int
	p        poller[SysStats]
}

// NewSysProvider returns a provider polling every interval and
// reporting filesystem usage for diskPath.
func NewSysProvider(clk clock.Clock, log *slog.Logger, interval time.Duration, diskPath string) *SysProvider {
	if interval <= 0 {
		interval = time.Second
	}
	if diskPath == "" {
		diskPath = "/"
	}
	hostname, _ := os.Hostname()
	s := &SysProvider{
		log:      log,
		diskPath: diskPath,
		hostname: hostname,
	}
	s.p = poller[SysStats]{clk: clk, interval: interval, sample: s.sample}
	return s
}

// Run polls until ctx is cancelled.
func (s *SysProvider) Run(ctx context.Context) { s.p.run(ctx) }

// Status returns the freshest reading. ok is false when the source
// has not reported recently.
func (s *SysProvider) Status(now time.Time) (SysStats, bool) {
	return s.p.cell.Get(now, s.p.maxAge())
}

func (s *SysProvider) sample(ctx context.Context) SysStats {
	st := SysStats{Hostname: s.hostname}
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		st.CPUPercent = pcts[0]
		s.histPush(pcts[0])
	} else if err != nil {
		s.log.Debug("cpu sample failed", "err", err)
	}
	st.CPUHistory = s.histWindow()
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		st.MemUsedMB = vm.Used >> 20
		st.MemTotalMB = vm.Total >> 20
		st.MemPercent = vm.UsedPercent
	}
	if la, err := load.AvgWithContext(ctx); err == nil {
		st.Load1 = la.Load1
	}
	if du, err := disk.UsageWithContext(ctx, s.diskPath); err == nil {
		st.DiskUsedGB = float64(du.Used) / (1 << 30)
		st.DiskTotalGB = float64(du.Total) / (1 << 30)
		st.DiskPercent = du.UsedPercent
	}
	if temps, err := sensors.TemperaturesWithContext(ctx); err == nil {
		st.TempC = pickTemp(temps)
	}
	if up, err := host.UptimeWithContext(ctx); err == nil {
		st.UptimeSec = up
	}
	return st
}

func (s *SysProvider) histPush(v float64) {
	s.hist[s.histPos] = v
	s.histPos = (s.histPos + 1) % len(s.hist)
	if s.histN < len(s.hist) {
		s.histN++
	}
}

// histAt indexes the ring oldest first.
func (s *SysProvider) histAt(i int) float64 {
	if s.histN < len(s.hist) {
		return s.hist[i]
	}
	return s.hist[(s.histPos+i)%len(s.hist)]
}

// histWindow downsamples the ring into the fixed window a snapshot
// carries. Buckets keep their maximum so short spikes stay visible.
func (s *SysProvider) histWindow() [CPUHistoryLen]float64 {
	var out [CPUHistoryLen]float64
	n := s.histN
	if n == 0 {
		return out
	}
	span := float64(n) / CPUHistoryLen
	for i := range out {
		lo := int(float64(i) * span)
		hi := int(float64(i+1) * span)
		if hi <= lo {
			hi = lo + 1
		}
		if hi > n {
			hi = n
		}
		peak := 0.0
		for j := lo; j < hi; j++ {
			if v := s.histAt(j); v > peak {
				peak = v
			}
		}
		out[i] = peak
	}
	return out
}

// pickTemp prefers the SoC sensor when one is identifiable, falling
// back to the first reading.
func pickTemp(stats []sensors.TemperatureStat) float64 {
	if len(stats) == 0 {
		return 0
	}
	for _, st := range stats {
		key := strings.ToLower(st.SensorKey)
		if strings.Contains(key, "cpu") || strings.Contains(key, "coretemp") || strings.Contains(key, "soc") {
			return st.Temperature
		}
	}
	return stats[0].Temperature
}
