package ui

import "testing"

func TestFormatUptime(t *testing.T) {
	cases := []struct {
		sec  uint64
		want string
	}{
		{0, "00:00"},
		{59, "00:00"},
		{60, "00:01"},
		{3661, "01:01"},
		{86399, "23:59"},
		{90061, "1d 01:01"},
		{2*86400 + 600, "2d 00:10"},
	}
	for _, tc := range cases {
		if got := formatUptime(tc.sec); got != tc.want {
			t.Errorf("formatUptime(%d) = %q, want %q", tc.sec, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		s    string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a-very-long-network-name", 10, "a-very-l.."},
		{"ab", 1, "a"},
	}
	for _, tc := range cases {
		if got := truncate(tc.s, tc.n); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.s, tc.n, got, tc.want)
		}
	}
}

func TestGaugeClampsPercent(t *testing.T) {
	ops := gauge(10, 20, 100, 8, 150, ColorAccent)
	if len(ops) != 2 {
		t.Fatalf("gauge emitted %d ops", len(ops))
	}
	if ops[1].W != 100 {
		t.Fatalf("overdriven gauge width = %d, want full track", ops[1].W)
	}
	ops = gauge(10, 20, 100, 8, -5, ColorAccent)
	if ops[1].W != 0 {
		t.Fatalf("negative gauge width = %d, want 0", ops[1].W)
	}
}
