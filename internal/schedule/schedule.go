// Package schedule runs callbacks once after a delay.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// Task is a single scheduled callback.
type Task interface {
	// Cancel stops the task if it has not fired yet and reports whether it did.
	Cancel() bool
}

// Scheduler schedules a callback to run once after delay.
type Scheduler interface {
	Once(delay time.Duration, fn func()) Task
}

// Clock schedules callbacks on the runtime timer. Callbacks run on their
// own goroutine.
type Clock struct{}

var _ Scheduler = Clock{}

func (Clock) Once(delay time.Duration, fn func()) Task {
	return timerTask{time.AfterFunc(delay, fn)}
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}

// Manual is a Scheduler driven by Advance. Callbacks run synchronously on
// the goroutine calling Advance, in due-time order.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

var _ Scheduler = (*Manual)(nil)

type manualTask struct {
	m        *Manual
	due      time.Duration
	seq      int
	fn       func()
	finished bool
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Once(delay time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTask{m: m, due: m.now + delay, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every task that became due.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now += d
	var due, pending []*manualTask
	for _, t := range m.tasks {
		if t.due <= m.now {
			t.finished = true
			due = append(due, t)
		} else {
			pending = append(pending, t)
		}
	}
	m.tasks = pending
	m.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of tasks that have neither fired nor been cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (t *manualTask) Cancel() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()

	if t.finished {
		return false
	}
	t.finished = true
	for i, other := range t.m.tasks {
		if other == t {
			t.m.tasks = append(t.m.tasks[:i], t.m.tasks[i+1:]...)
			break
		}
	}
	return true
}
