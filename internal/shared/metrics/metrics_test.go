package metrics

import (
	"strings"
	"testing"
)

func metricValue(t *testing.T, rendered, name string) string {
	t.Helper()
	for _, line := range strings.Split(rendered, "\n") {
		if strings.HasPrefix(line, name+" ") {
			return strings.TrimPrefix(line, name+" ")
		}
	}
	t.Fatalf("metric %s not found in output:\n%s", name, rendered)
	return ""
}

func TestRenderHistogramBucketsMatchCount(t *testing.T) {
	ObservePollAttempts(1)
	ObservePollAttempts(2)

	out := Render()

	cases := []struct {
		name string
		want string
	}{
		{`humanize_poll_attempts_bucket{le="1"}`, "1"},
		{`humanize_poll_attempts_bucket{le="2"}`, "2"},
		{`humanize_poll_attempts_bucket{le="3"}`, "2"},
		{`humanize_poll_attempts_bucket{le="30"}`, "2"},
		{`humanize_poll_attempts_bucket{le="+Inf"}`, "2"},
		{"humanize_poll_attempts_count", "2"},
		{"humanize_poll_attempts_sum", "3"},
	}
	for _, tc := range cases {
		if got := metricValue(t, out, tc.name); got != tc.want {
			t.Errorf("%s = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestRenderHistogramBucketsMonotonic(t *testing.T) {
	ObserveHumanizeDurationMs(1500)
	ObserveHumanizeDurationMs(6000)
	ObserveHumanizeDurationMs(6000)

	snap := humanizeDuration.Snapshot()
	var prev uint64
	for i, n := range snap.counts {
		if n < prev {
			t.Fatalf("bucket %d count %d below previous %d", i, n, prev)
		}
		prev = n
	}
	if prev > snap.count {
		t.Fatalf("largest bucket %d exceeds total count %d", prev, snap.count)
	}
}

func TestRenderCounters(t *testing.T) {
	IncHumanizeStarted()
	IncHumanizeCompleted()

	out := Render()
	if metricValue(t, out, "humanize_started_total") == "0" {
		t.Fatal("started counter not rendered")
	}
	if !strings.Contains(out, "# TYPE humanize_started_total counter") {
		t.Fatal("missing counter type line")
	}
}
