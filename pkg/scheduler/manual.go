package scheduler

import (
	"sort"
	"time"
)

type manualTask struct {
	seq uint64
	due time.Duration
	fn  func()
}

// Manual is a virtual-clock scheduler. Nothing runs until Advance or Flush.
// It is not safe for concurrent use.
type Manual struct {
	now   time.Duration
	seq   uint64
	tasks []manualTask
}

// NewManual creates a virtual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After implements Scheduler.
func (m *Manual) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.seq++
	m.tasks = append(m.tasks, manualTask{seq: m.seq, due: m.now + d, fn: fn})
	return Handle{ID: m.seq, Delay: d}
}

// Post implements Scheduler. The task runs on the next Advance, including Advance(0).
func (m *Manual) Post(fn func()) {
	m.After(0, fn)
}

// Advance moves the clock forward by d and runs every task that became due,
// ordered by due time then scheduling order. Tasks scheduled while advancing
// run too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		i := m.nextDue(target)
		if i < 0 {
			break
		}
		task := m.tasks[i]
		m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
		m.now = task.due
		task.fn()
	}
	m.now = target
}

// Flush runs every pending task, advancing the clock as far as needed.
func (m *Manual) Flush() {
	for len(m.tasks) > 0 {
		sort.SliceStable(m.tasks, func(a, b int) bool { return less(m.tasks[a], m.tasks[b]) })
		m.Advance(m.tasks[0].due - m.now)
	}
}

// Pending returns the number of tasks not yet run.
func (m *Manual) Pending() int {
	return len(m.tasks)
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) nextDue(target time.Duration) int {
	best := -1
	for i, t := range m.tasks {
		if t.due > target {
			continue
		}
		if best < 0 || less(t, m.tasks[best]) {
			best = i
		}
	}
	return best
}

func less(a, b manualTask) bool {
	if a.due != b.due {
		return a.due < b.due
	}
	return a.seq < b.seq
}
