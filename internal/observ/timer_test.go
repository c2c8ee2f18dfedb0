package observ

import (
	"strings"
	"testing"
	"time"

	"copper/internal/linter"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("discover")
	tm.End(idx, "3 files")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != "discover" || r.Phases[0].Note != "3 files" {
		t.Fatalf("phases = %+v", r.Phases)
	}
	if !strings.Contains(tm.Summary(), "discover") {
		t.Error("summary lacks phase")
	}
}

func TestTimerEvents(t *testing.T) {
	tm := NewTimer()
	tm.OnEvent(linter.Event{File: "a.rb", Status: linter.StatusQueued})
	tm.OnEvent(linter.Event{File: "a.rb", Status: linter.StatusDone, Elapsed: 3 * time.Millisecond})
	tm.OnEvent(linter.Event{File: "b.rb", Status: linter.StatusCached, Elapsed: time.Millisecond})
	tm.OnEvent(linter.Event{File: "c.rb", Status: linter.StatusError})

	files := tm.Report().Files
	if files.Linted != 1 || files.Cached != 1 || files.Failed != 1 {
		t.Fatalf("files = %+v", files)
	}
	if files.WorkerMS != 4 {
		t.Errorf("worker ms = %v", files.WorkerMS)
	}
	if files.Slowest[0].Name != "a.rb" {
		t.Errorf("slowest = %+v", files.Slowest)
	}
	if !strings.Contains(tm.Summary(), "1 linted, 1 cached, 1 failed") {
		t.Errorf("summary:\n%s", tm.Summary())
	}
}
