package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/sumset/internal/cli/mocks"
	"github.com/agbru/sumset/internal/progress"
)

// recordingSpinner records calls for assertions without a terminal.
type recordingSpinner struct {
	started  bool
	stopped  bool
	suffixes []string
}

func (m *recordingSpinner) Start()                     { m.started = true }
func (m *recordingSpinner) Stop()                      { m.stopped = true }
func (m *recordingSpinner) UpdateSuffix(suffix string) { m.suffixes = append(m.suffixes, suffix) }

func sendUpdates(total int) <-chan progress.ProgressUpdate {
	ch := make(chan progress.ProgressUpdate, total)
	for i := 1; i <= total; i++ {
		ch <- progress.ProgressUpdate{ShardIndex: i - 1, Completed: i, Total: total, Elapsed: time.Duration(i) * time.Second}
	}
	close(ch)
	return ch
}

// DisplayProgress tests swap the package-level spinner factory, so they
// do not run in parallel.

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	rec := &recordingSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner { return rec }

	var wg sync.WaitGroup
	wg.Add(1)
	var out bytes.Buffer
	DisplayProgress(&wg, sendUpdates(4), 4, &out)
	wg.Wait()

	if !rec.started || !rec.stopped {
		t.Error("spinner should have been started and stopped")
	}
	if len(rec.suffixes) != 5 {
		t.Fatalf("got %d suffix updates, want 5", len(rec.suffixes))
	}
	if last := rec.suffixes[4]; !strings.Contains(last, "100.0%") {
		t.Errorf("final suffix = %q, want 100%%", last)
	}
	if got := out.String(); got != "100% done, 4.0s since start\n" {
		t.Errorf("final line = %q", got)
	}
}

func TestDisplayProgress_GomockSpinner(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	ctrl := gomock.NewController(t)
	mock := mocks.NewMockSpinner(ctrl)
	gomock.InOrder(
		mock.EXPECT().UpdateSuffix(gomock.Any()),
		mock.EXPECT().Start(),
		mock.EXPECT().UpdateSuffix(gomock.Any()).Times(2),
		mock.EXPECT().Stop(),
	)
	newSpinner = func(options ...spinner.Option) Spinner { return mock }

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, sendUpdates(2), 2, io.Discard)
	wg.Wait()
}

func TestDisplayProgress_ZeroShards(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	ch := make(chan progress.ProgressUpdate)
	close(ch)
	DisplayProgress(&wg, ch, 0, io.Discard)
	wg.Wait()
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))}
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestLineProgressReporter(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	var out bytes.Buffer
	LineProgressReporter{}.DisplayProgress(&wg, sendUpdates(4), 4, &out)
	wg.Wait()

	want := "25% done, 1.0s since start\n50% done, 2.0s since start\n75% done, 3.0s since start\n100% done, 4.0s since start\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestNewProgressReporter(t *testing.T) {
	t.Parallel()
	if _, ok := NewProgressReporter(&bytes.Buffer{}).(LineProgressReporter); !ok {
		t.Error("non-terminal writers should get line progress")
	}

	// Character devices that are not terminals still get line progress.
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Skipf("cannot open %s: %v", os.DevNull, err)
	}
	defer devNull.Close()
	if _, ok := NewProgressReporter(devNull).(LineProgressReporter); !ok {
		t.Errorf("%s should get line progress", os.DevNull)
	}

	file, err := os.CreateTemp(t.TempDir(), "progress")
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if _, ok := NewProgressReporter(file).(LineProgressReporter); !ok {
		t.Error("regular files should get line progress")
	}
}
