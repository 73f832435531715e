package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Frame("headless")
	m.Frame("headless")
	m.Frame("window")
	m.ProgramFailed("sky")
	m.AssetFallback("moon")
	m.ObserveRender(20 * time.Millisecond)

	if got := testutil.ToFloat64(m.frames.WithLabelValues("headless")); got != 2 {
		t.Fatalf("headless frames=%v", got)
	}
	if got := testutil.ToFloat64(m.programErrors.WithLabelValues("sky")); got != 1 {
		t.Fatalf("program failures=%v", got)
	}
	if got := testutil.ToFloat64(m.assetFallbacks.WithLabelValues("moon")); got != 1 {
		t.Fatalf("asset fallbacks=%v", got)
	}
	if n := testutil.CollectAndCount(m.renderDuration); n != 1 {
		t.Fatalf("render histogram series=%d", n)
	}
}

func TestNilCollector(t *testing.T) {
	var m *Collector
	m.Frame("cpu")
	m.ProgramFailed("grain")
	m.AssetFallback("moon")
	m.ObserveRender(time.Second)
	if m.Registry() != nil {
		t.Fatal("nil collector has a registry")
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.Frame("cpu")
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"skyline_frames_total", "skyline_build_info"} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("missing %s in output", want)
		}
	}
}
