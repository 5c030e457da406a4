package eventloop

import (
	"context"
	"sort"
	"time"
)

// Manual is a Scheduler with a virtual clock that only moves on Advance.
// Timers fire synchronously inside Advance.
type Manual struct {
	ctx    context.Context
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

var _ Scheduler = (*Manual)(nil)

func NewManual(ctx context.Context) *Manual {
	return &Manual{ctx: ctx}
}

type manualTimer struct {
	scheduler *Manual
	deadline  time.Duration
	seq       uint64
	task      Task
}

func (m *Manual) AfterFunc(d time.Duration, task Task) Timer {
	m.seq++
	t := &manualTimer{
		scheduler: m,
		deadline:  m.now + d,
		seq:       m.seq,
		task:      task,
	}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	return t.scheduler.remove(t)
}

func (m *Manual) remove(t *manualTimer) bool {
	for idx, candidate := range m.timers {
		if candidate == t {
			m.timers = append(m.timers[:idx], m.timers[idx+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the virtual clock and fires every timer that becomes due,
// earliest first.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		sort.SliceStable(m.timers, func(i, j int) bool {
			if m.timers[i].deadline != m.timers[j].deadline {
				return m.timers[i].deadline < m.timers[j].deadline
			}
			return m.timers[i].seq < m.timers[j].seq
		})
		if len(m.timers) == 0 || m.timers[0].deadline > target {
			break
		}
		t := m.timers[0]
		m.timers = m.timers[1:]
		m.now = t.deadline
		t.task(m.ctx)
	}
	m.now = target
}

// Pending returns the amount of armed timers.
func (m *Manual) Pending() int {
	return len(m.timers)
}

func (m *Manual) Now() time.Duration {
	return m.now
}
