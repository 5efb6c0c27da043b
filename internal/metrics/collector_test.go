package metrics

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/sumset/internal/logging"
)

func TestCollector_Records(t *testing.T) {
	t.Parallel()
	c := NewCollector(nil)

	c.ObserveCount(1, time.Millisecond)
	c.ObserveCount(2, 2*time.Millisecond)
	c.ShardCompleted(2)
	c.ShardCompleted(3)
	c.BatchFinished(5, time.Second, nil)
	c.BatchFinished(0, 2*time.Second, errors.New("boom"))

	if got := testutil.ToFloat64(c.shards); got != 2 {
		t.Errorf("shards = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.rows); got != 5 {
		t.Errorf("rows = %v, want 5", got)
	}
	if got := testutil.ToFloat64(c.lastN); got != 2 {
		t.Errorf("lastN = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.batches.WithLabelValues("success")); got != 1 {
		t.Errorf("successful batches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.batches.WithLabelValues("failure")); got != 1 {
		t.Errorf("failed batches = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.batchDuration); got != 2 {
		t.Errorf("batch duration = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(c.countDuration); n != 1 {
		t.Errorf("histogram series = %d, want 1", n)
	}
}

func TestCollector_IndependentRegistries(t *testing.T) {
	t.Parallel()
	a, b := NewCollector(nil), NewCollector(nil)
	a.ShardCompleted(1)
	if got := testutil.ToFloat64(b.shards); got != 0 {
		t.Errorf("collectors share state: %v", got)
	}
}

func TestCollector_Serve(t *testing.T) {
	t.Parallel()
	c := NewCollector(NewMemoryCollector())
	c.ShardCompleted(4)

	var logs bytes.Buffer
	srv, err := c.Serve("127.0.0.1:0", logging.NewLogger(&logs, "metrics"))
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Shutdown(context.Background())

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{"sumset_shards_completed_total 1", "sumset_rows_computed_total 4", "sumset_heap_alloc_bytes"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics missing %q", want)
		}
	}
	if !strings.Contains(logs.String(), "metrics endpoint listening") {
		t.Errorf("expected listen log, got %s", logs.String())
	}
}

func TestCollector_ServeBindError(t *testing.T) {
	t.Parallel()
	if _, err := NewCollector(nil).Serve("256.0.0.1:bad", logging.NewLogger(io.Discard, "metrics")); err == nil {
		t.Error("expected bind error")
	}
}
