package render

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Immediate runs every task synchronously, ignoring the delay. HTTP responses
// use it: the stagger is carried to the browser as a CSS animation delay.
type Immediate struct{}

// After implements Scheduler.
func (Immediate) After(_ time.Duration, fn func()) { fn() }

// TimerScheduler runs tasks on real timers.
type TimerScheduler struct {
	wg sync.WaitGroup
}

// After implements Scheduler.
func (s *TimerScheduler) After(d time.Duration, fn func()) {
	s.wg.Add(1)
	time.AfterFunc(d, func() {
		defer s.wg.Done()
		fn()
	})
}

// Wait blocks until every scheduled task has run.
func (s *TimerScheduler) Wait() {
	s.wg.Wait()
}

// VirtualScheduler queues tasks against a virtual clock that only moves when
// Advance is called. Tasks due at the same instant run in scheduling order.
type VirtualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []virtualTask
}

type virtualTask struct {
	due time.Duration
	seq int
	fn  func()
}

// After implements Scheduler.
func (s *VirtualScheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, virtualTask{due: s.now + d, seq: s.seq, fn: fn})
	s.seq++
}

// Advance moves the clock forward by d and runs every task that became due.
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	var due []virtualTask
	for len(s.tasks) > 0 && s.tasks[0].due <= s.now {
		due = append(due, s.tasks[0])
		s.tasks = s.tasks[1:]
	}
	s.mu.Unlock()

	for _, t := range due {
		t.fn()
	}
}

// Pending returns the number of tasks not yet run.
func (s *VirtualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}
