package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRenderIncludesCountersAndHistogram(t *testing.T) {
	IncRecommendRequests()
	IncValidationFailed()
	AddResults(16)
	ObserveDuration(2 * time.Millisecond)

	out := Render()
	for _, want := range []string{
		"# TYPE recommend_requests_total counter",
		"# TYPE recommend_duration_ms histogram",
		`recommend_duration_ms_bucket{le="+Inf"}`,
		`recommend_duration_ms_bucket{le="0.5"}`,
		"recommend_results_total ",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{1, 10})
	h.Observe(0.5)
	h.Observe(5)
	h.Observe(50)

	snap := h.Snapshot()
	if snap.count != 3 || snap.sum != 55.5 {
		t.Fatalf("unexpected snapshot count=%d sum=%v", snap.count, snap.sum)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected per-bucket counts %v", snap.counts)
	}

	var buf bytes.Buffer
	writeHistogram(&buf, "h", "test", snap)
	out := buf.String()
	for _, want := range []string{`h_bucket{le="1"} 1`, `h_bucket{le="10"} 2`, `h_bucket{le="+Inf"} 3`, "h_sum 55.5", "h_count 3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
