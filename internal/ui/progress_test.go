package ui

import (
	"strings"
	"testing"

	"copper/internal/linter"
)

func TestApplyEventCountsFinalStatesOnce(t *testing.T) {
	m := NewProgressModel("copper", []string{"a.rb", "b.rb"}, nil).(*progressModel)
	m.applyEvent(linter.Event{File: "a.rb", Status: linter.StatusWorking})
	m.applyEvent(linter.Event{File: "a.rb", Status: linter.StatusDone, Offenses: 2})
	m.applyEvent(linter.Event{File: "a.rb", Status: linter.StatusDone, Offenses: 2})
	m.applyEvent(linter.Event{File: "b.rb", Status: linter.StatusCached, Tier: "stat"})
	m.applyEvent(linter.Event{File: "unknown.rb", Status: linter.StatusDone})

	if m.finished != 2 || m.offenses != 2 {
		t.Fatalf("finished=%d offenses=%d", m.finished, m.offenses)
	}
	view := m.View()
	if !strings.Contains(view, "2/2 files, 2 offenses") || !strings.Contains(view, "cached:stat") {
		t.Errorf("view:\n%s", view)
	}
}

func TestRecentWindowIsBounded(t *testing.T) {
	var files []string
	for i := 0; i < maxVisible+5; i++ {
		files = append(files, strings.Repeat("x", i+1)+".rb")
	}
	m := NewProgressModel("copper", files, nil).(*progressModel)
	for _, f := range files {
		m.applyEvent(linter.Event{File: f, Status: linter.StatusWorking})
	}
	if len(m.recent) != maxVisible {
		t.Fatalf("recent = %d", len(m.recent))
	}
	if m.recent[len(m.recent)-1] != len(files)-1 {
		t.Error("latest file must be last")
	}
}

func TestTruncateKeepsTail(t *testing.T) {
	got := truncate("app/models/very/long/path/user.rb", 15)
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "user.rb") {
		t.Errorf("truncate = %q", got)
	}
	if truncate("short.rb", 20) != "short.rb" {
		t.Error("short value changed")
	}
}
