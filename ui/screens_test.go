package ui

import (
	"testing"
	"time"

	"lumen/input"
	"lumen/internal/buildinfo"
	"lumen/status"
)

func sysSnapshot() status.Snapshot {
	snap := demoSnapshot()
	snap.SysOK = true
	snap.Sys = status.SysStats{
		CPUPercent:  42.4,
		Load1:       0.52,
		MemUsedMB:   412,
		MemTotalMB:  926,
		MemPercent:  44.5,
		DiskUsedGB:  12.3,
		DiskTotalGB: 29.1,
		DiskPercent: 42.3,
		TempC:       48.34,
		UptimeSec:   90061,
		Hostname:    "lumen-pi",
	}
	return snap
}

func TestSystemRenderValues(t *testing.T) {
	f := NewSystem().Render(sysSnapshot())
	for _, want := range []string{"42%", "0.52", "412 / 926 MB", "48.3 C", "shed"} {
		if _, ok := findText(f, want); !ok {
			t.Errorf("value %q missing from system screen", want)
		}
	}
}

func TestSystemRenderWithoutStats(t *testing.T) {
	withStats := NewSystem().Render(sysSnapshot())

	snap := sysSnapshot()
	snap.SysOK = false
	snap.Sys = status.SysStats{}
	without := NewSystem().Render(snap)

	if _, ok := findText(without, "--"); !ok {
		t.Fatal("missing stats did not render placeholders")
	}
	if len(withStats.Ops) != len(without.Ops) {
		t.Fatalf("op count depends on stats presence: %d vs %d", len(withStats.Ops), len(without.Ops))
	}
}

func TestSystemSparklineScalesColumns(t *testing.T) {
	var hist [status.CPUHistoryLen]float64
	hist[0] = 100
	hist[1] = 50
	ops := sparkline(30, 64, hist)
	if len(ops) != sparkCols+1 {
		t.Fatalf("sparkline emitted %d ops, want %d", len(ops), sparkCols+1)
	}
	full, half, empty := ops[1], ops[2], ops[3]
	if full.H != sparkH-2 {
		t.Fatalf("full column height = %d, want %d", full.H, sparkH-2)
	}
	if half.H != (sparkH-2)/2 {
		t.Fatalf("half column height = %d, want %d", half.H, (sparkH-2)/2)
	}
	if empty.H != 0 {
		t.Fatalf("empty column height = %d, want 0", empty.H)
	}
	if full.Y+full.H != 64+sparkH-1 {
		t.Fatalf("column not anchored to the bottom: y=%d h=%d", full.Y, full.H)
	}
}

func TestStorageRender(t *testing.T) {
	f := NewStorage().Render(sysSnapshot())
	for _, want := range []string{"12.3 / 29.1 GB", "16.8 GB", "42%"} {
		if _, ok := findText(f, want); !ok {
			t.Errorf("value %q missing from storage screen", want)
		}
	}

	snap := sysSnapshot()
	snap.Sys.DiskPercent = 95
	g := NewStorage().Render(snap)
	found := false
	for _, op := range g.Ops {
		if op.Kind == OpFill && op.Color == ColorAlert {
			found = true
		}
	}
	if !found {
		t.Fatal("nearly full disk did not switch the bar to the alert color")
	}
}

func TestGPSViewWithFix(t *testing.T) {
	snap := demoSnapshot()
	snap.GPS = status.GPSStatus{
		State: status.GPSFix3D,
		Fix: status.Fix{
			Lat:      52.52001,
			Lon:      13.40495,
			AltM:     34,
			SpeedKmh: 12.7,
			TrackDeg: 271,
			Sats:     9,
			Time:     time.Date(2024, 6, 1, 12, 4, 5, 0, time.UTC),
		},
	}
	f := NewGPSView().Render(snap)
	for _, want := range []string{"3D fix", "52.52001", "13.40495", "34 m", "12.7 km/h", "9", "12:04:05"} {
		if _, ok := findText(f, want); !ok {
			t.Errorf("value %q missing from gps screen", want)
		}
	}
}

func TestGPSViewSearchingShowsPlaceholders(t *testing.T) {
	f := NewGPSView().Render(demoSnapshot())
	if _, ok := findText(f, "searching"); !ok {
		t.Fatal("state row missing")
	}
	if _, ok := findText(f, "--"); !ok {
		t.Fatal("placeholders missing without a fix")
	}
}

func TestGPSView2DFixHidesAltitude(t *testing.T) {
	snap := demoSnapshot()
	snap.GPS = status.GPSStatus{State: status.GPSFix2D, Fix: status.Fix{Lat: 1, Lon: 2}}
	f := NewGPSView().Render(snap)
	if _, ok := findText(f, "2D fix"); !ok {
		t.Fatal("state row missing")
	}
	if _, ok := findText(f, "0 m"); ok {
		t.Fatal("2D fix rendered an altitude")
	}
}

func TestAboutRender(t *testing.T) {
	f := NewAbout().Render(sysSnapshot())
	if _, ok := findText(f, buildinfo.Name); !ok {
		t.Fatal("product name missing")
	}
	if _, ok := findText(f, "lumen-pi"); !ok {
		t.Fatal("hostname missing")
	}
	if _, ok := findText(f, "1d 01:01"); !ok {
		t.Fatal("uptime missing")
	}
}

func TestDetailScreensPopOnBack(t *testing.T) {
	screens := []Screen{NewSystem(), NewStorage(), NewGPSView(), NewAbout()}
	for _, s := range screens {
		if tr := s.HandleInput(press(input.BtnBack)); tr.Kind != TransPop {
			t.Errorf("%s: back = %v, want pop", s.Name(), tr.Kind)
		}
		if tr := s.HandleInput(press(input.BtnLeft)); tr.Kind != TransPop {
			t.Errorf("%s: left = %v, want pop", s.Name(), tr.Kind)
		}
		if tr := s.HandleInput(press(input.BtnDown)); tr.Kind != TransStay {
			t.Errorf("%s: down = %v, want stay", s.Name(), tr.Kind)
		}
		if tr := s.HandleInput(input.Event{Button: input.BtnBack, Kind: input.Released}); tr.Kind != TransStay {
			t.Errorf("%s: back release = %v, want stay", s.Name(), tr.Kind)
		}
	}
}
