// Package notify carries user-facing success and error messages from the
// transport and session layers to whatever presents them.
package notify

import (
	"sync"
	"time"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is one message to show the user.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Sink receives notifications. Implementations must not block the caller
// for long; they run inline with the request that produced the message.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notification)

func (f SinkFunc) Notify(n Notification) { f(n) }

// Discard drops every notification.
var Discard Sink = SinkFunc(func(Notification) {})

func Success(s Sink, msg string) { emit(s, LevelSuccess, msg) }

func Error(s Sink, msg string) { emit(s, LevelError, msg) }

func Info(s Sink, msg string) { emit(s, LevelInfo, msg) }

func emit(s Sink, level Level, msg string) {
	if s == nil {
		return
	}
	s.Notify(Notification{Level: level, Message: msg, At: time.Now()})
}

// Fanout delivers each notification to every sink in order.
type Fanout []Sink

func (f Fanout) Notify(n Notification) {
	for _, s := range f {
		if s != nil {
			s.Notify(n)
		}
	}
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}

// Drain returns and clears the recorded notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.items
	r.items = nil
	return out
}
