// Package observ measures run phases for --timings.
package observ

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"copper/internal/linter"
)

// Phase records the duration and metadata of a run phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the phases of one run plus per-file lint times fed by
// pipeline events. Begin/End are called from the CLI goroutine only;
// OnEvent may be called from any worker.
type Timer struct {
	phases []Phase

	mu      sync.Mutex
	files   map[string]time.Duration
	linted  int
	cached  int
	failed  int
	working time.Duration
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer {
	return &Timer{phases: make([]Phase, 0, 8), files: make(map[string]time.Duration)}
}

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// OnEvent implements linter.ProgressSink.
func (t *Timer) OnEvent(evt linter.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch evt.Status {
	case linter.StatusDone:
		t.linted++
	case linter.StatusCached:
		t.cached++
	case linter.StatusError:
		t.failed++
	default:
		return
	}
	t.files[evt.File] = evt.Elapsed
	t.working += evt.Elapsed
}

// slowestShown bounds the per-file lines in Summary.
const slowestShown = 5

// Summary returns a human-readable string summarizing all tracked phases.
func (t *Timer) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", report.TotalMS)
	if report.Files.Linted+report.Files.Cached+report.Files.Failed > 0 {
		fmt.Fprintf(&b, "files: %d linted, %d cached, %d failed; worker time %.2f ms\n",
			report.Files.Linted, report.Files.Cached, report.Files.Failed, report.Files.WorkerMS)
		for _, f := range report.Files.Slowest {
			fmt.Fprintf(&b, "  %7.2f ms  %s\n", f.DurationMS, f.Name)
		}
	}
	return b.String()
}

// PhaseReport представляет сжатую информацию о фазе таймера для сериализации.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// FilesReport aggregates per-file events.
type FilesReport struct {
	Linted   int           `json:"linted"`
	Cached   int           `json:"cached"`
	Failed   int           `json:"failed"`
	WorkerMS float64       `json:"worker_ms"`
	Slowest  []PhaseReport `json:"slowest,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
	Files   FilesReport   `json:"files"`
}

// Report формирует срез фаз и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: durationToMillis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = durationToMillis(total)

	t.mu.Lock()
	defer t.mu.Unlock()
	report.Files = FilesReport{
		Linted:   t.linted,
		Cached:   t.cached,
		Failed:   t.failed,
		WorkerMS: durationToMillis(t.working),
	}
	slow := make([]PhaseReport, 0, len(t.files))
	for name, d := range t.files {
		slow = append(slow, PhaseReport{Name: name, DurationMS: durationToMillis(d)})
	}
	sort.Slice(slow, func(i, j int) bool {
		if slow[i].DurationMS != slow[j].DurationMS {
			return slow[i].DurationMS > slow[j].DurationMS
		}
		return slow[i].Name < slow[j].Name
	})
	if len(slow) > slowestShown {
		slow = slow[:slowestShown]
	}
	report.Files.Slowest = slow
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
