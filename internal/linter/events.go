package linter

import "time"

// Status captures the progress state of one file.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being linted.
	StatusWorking Status = "working"
	// StatusCached indicates the result came from the cache.
	StatusCached Status = "cached"
	// StatusDone indicates the file was linted.
	StatusDone Status = "done"
	// StatusError indicates the file could not be read or parsed.
	StatusError Status = "error"
)

// Event reports progress for a file.
type Event struct {
	File   string
	Status Status
	// Tier is "stat" or "content" for cached files.
	Tier     string
	Offenses int
	Err      error
	Elapsed  time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; workers publish directly.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}

func emitQueued(sink ProgressSink, files []Target) {
	if sink == nil {
		return
	}
	for _, t := range files {
		sink.OnEvent(Event{File: t.Display, Status: StatusQueued})
	}
}
