// Package debouncetest provee un reloj manual para tests de debounce.
package debouncetest

import (
	"sync"
	"time"

	"clinic-desk/internal/platform/debounce"
)

// Clock avanza solo con Advance; los callbacks corren en la goroutine de Advance.
type Clock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*timer
}

type timer struct {
	c    *Clock
	at   time.Duration
	f    func()
	done bool
}

func (t *timer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	was := !t.done
	t.done = true
	return was
}

func New() *Clock {
	return &Clock{}
}

var _ debounce.Clock = (*Clock)(nil)

func (c *Clock) AfterFunc(d time.Duration, f func()) debounce.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &timer{c: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Elapsed es el tiempo virtual transcurrido desde New.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance mueve el reloj y dispara, en orden, los timers vencidos.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		next := c.nextDueLocked(target)
		if next == nil {
			break
		}
		c.now = next.at
		next.done = true
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *Clock) nextDueLocked(target time.Duration) *timer {
	var best *timer
	for _, t := range c.timers {
		if t.done || t.at > target {
			continue
		}
		if best == nil || t.at < best.at {
			best = t
		}
	}
	return best
}
